package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly gates admin routes. It must run after Auth, which is what puts
// the is_admin claim into the context; a request with no claim is treated as
// non-admin.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get(CtxIsAdmin).(bool)
			if !isAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Action Forbidden"})
			}
			return next(c)
		}
	}
}
