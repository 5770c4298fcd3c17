package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crudkit/items-api/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware. A missing
// session means the route was mounted without the middleware.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s, _ := c.Get("session").(*domain.Session)
	if s == nil || s.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return s, nil
}

// ctxUser is ctxSession narrowed to the caller.
func ctxUser(c echo.Context) (*domain.User, error) {
	s, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return s.User, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs the echo validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
