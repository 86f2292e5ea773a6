package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/b5commerce/accounts-api/internal/core/domain"
	"github.com/b5commerce/accounts-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxIsAdmin  = "is_admin"
)

// Auth verifies the bearer token and injects the decoded identity into the
// request context. A missing or unverifiable token halts the request with 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenExpired.Error())
				}
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenInvalid.Error())
			}

			c.Set(CtxUserID, identity.ID)
			c.Set(CtxUsername, identity.Username)
			c.Set(CtxIsAdmin, identity.IsAdmin)

			return next(c)
		}
	}
}
