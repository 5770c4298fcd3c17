package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/crudkit/items-api/internal/api/docs"
	"github.com/crudkit/items-api/internal/api/handler"
	"github.com/crudkit/items-api/internal/api/middleware"
	"github.com/crudkit/items-api/internal/core/ports"
)

// Deps carries everything the router needs. Registerer and Gatherer default
// to the prometheus globals when nil.
type Deps struct {
	AuthService ports.AuthService
	ItemService ports.ItemService
	UserService ports.UserService
	Logger      zerolog.Logger

	AllowedOrigins []string
	SwaggerEnabled bool
	// LogoutEnabled mounts POST /auth/logout; it needs a revocation store.
	LogoutEnabled bool
	Checkers      []ports.HealthChecker

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.UserService)
	itemHandler := handler.NewItemHandler(d.ItemService)
	userHandler := handler.NewUserHandler(d.UserService)
	healthHandler := handler.NewHealthHandler(d.Checkers...)
	authMiddleware := middleware.Auth(d.AuthService)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	if d.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware)
	auth.DELETE("/me", authHandler.DeleteMe, authMiddleware)
	if d.LogoutEnabled {
		auth.POST("/logout", authHandler.Logout, authMiddleware)
	}

	// --- Items (owner scoped) ---
	items := e.Group("/items", authMiddleware)
	items.POST("", itemHandler.Create)
	items.GET("", itemHandler.List)
	items.GET("/:id", itemHandler.Get)
	items.PUT("/:id", itemHandler.Update)
	items.PATCH("/:id", itemHandler.Update)
	items.DELETE("/:id", itemHandler.Delete)

	// --- Administration ---
	admin := e.Group("/admin", authMiddleware, middleware.RequireSuperuser())
	admin.GET("/users", userHandler.List)
	admin.DELETE("/users/:id", userHandler.Delete)

	return e
}
