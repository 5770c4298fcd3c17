package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/crudkit/items-api/internal/core/domain"
)

func TestRequireSuperuser_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", &domain.Session{User: &domain.User{ID: 1, IsSuperuser: true}})

	called := false
	handler := RequireSuperuser()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSuperuser_Forbids(t *testing.T) {
	for name, session := range map[string]*domain.Session{
		"regular user": {User: &domain.User{ID: 2}},
		"no session":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if session != nil {
				c.Set("session", session)
			}

			handler := RequireSuperuser()(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if rec.Body.Len() != 0 {
				t.Fatalf("rejection must be rendered by the error handler, got body %q", rec.Body.String())
			}
		})
	}
}
