package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/crudkit/items-api/internal/core/domain"
)

// RequireSuperuser lets the request through only when the session user is a
// superuser. Must run after Auth.
func RequireSuperuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get("session").(*domain.Session)
			if session == nil || session.User == nil || !session.User.IsSuperuser {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
