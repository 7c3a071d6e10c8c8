// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
)

// RequireRole checks that the authenticated caller has one of the allowed roles.
// It must run after JWTMiddleware.
func RequireRole(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := GetIdentity(c)
			if !ok {
				c.Logger().Error("Authentication failed: role not found")
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
			}

			for _, role := range allowed {
				if identity.Role == role {
					return next(c)
				}
			}

			c.Logger().Warnf("Access denied for role %s on %s, allowed: %v", identity.Role, c.Path(), allowed)
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "access denied for your role"})
		}
	}
}
