package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/b5commerce/accounts-api/internal/api/middleware"
)

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware. An empty id means the middleware did not run for this route,
// which is a wiring bug surfaced as 401 rather than a panic downstream.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
