// @title                       Items API
// @version                     1.0
// @description                 Authenticated CRUD API: user accounts with bearer tokens and per-user items.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/crudkit/items-api/internal/api"
	"github.com/crudkit/items-api/internal/core/ports"
	"github.com/crudkit/items-api/internal/core/service"
	"github.com/crudkit/items-api/internal/infrastructure/db"
	rediscache "github.com/crudkit/items-api/internal/infrastructure/db/redis"
	"github.com/crudkit/items-api/internal/pkg/config"
	"github.com/crudkit/items-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "items-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.AppName,
	})

	storage, err := db.Open(ctx, cfg.Storage, cfg.Mongo, cfg.Storage.AutoMigrate, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("close storage")
		}
	}()

	checkers := []ports.HealthChecker{storage.Checker}

	var revoker ports.TokenRevoker
	if cfg.Redis.Addr != "" {
		rdb, err := rediscache.Connect(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()

		revoker = rediscache.NewRevocationStore(rdb)
		checkers = append(checkers, rediscache.NewChecker(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	authService := service.NewAuthService(storage.Users, revoker, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, log)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		ItemService:    service.NewItemService(storage.Items, log),
		UserService:    service.NewUserService(storage.Users, log),
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		SwaggerEnabled: cfg.SwaggerEnabled,
		LogoutEnabled:  authService.CanRevoke(),
		Checkers:       checkers,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("storage", storage.Driver).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return shutdown(e.Shutdown, log)
}

func shutdown(fn func(context.Context) error, log zerolog.Logger) error {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
