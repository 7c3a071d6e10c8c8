// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/utils"
)

// Context keys set by JWTMiddleware
const (
	ContextUserID = "userId"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// TokenParser is implemented by utils.TokenManager
type TokenParser interface {
	Parse(token string) (*utils.Claims, error)
}

// JWTMiddleware requires a valid, unrevoked bearer token and stores the
// caller's identity on the context.
func JWTMiddleware(tokens TokenParser, blacklist TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := BearerToken(c.Request())
			if !ok {
				return unauthorized(c, "missing or malformed authorization header")
			}

			claims, err := tokens.Parse(raw)
			if errors.Is(err, utils.ErrTokenExpired) {
				return unauthorized(c, "token expired")
			}
			if err != nil {
				return unauthorized(c, "invalid token")
			}

			if blacklist != nil && claims.Id != "" {
				revoked, err := blacklist.IsRevoked(c.Request().Context(), claims.Id)
				if err != nil {
					c.Logger().Errorf("JWT middleware - revocation lookup failed: %v", err)
					return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to verify token"})
				}
				if revoked {
					return unauthorized(c, "token revoked")
				}
			}

			c.Set(ContextUserID, claims.ID)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextClaims, claims)
			return next(c)
		}
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetIdentity returns the identity stored by JWTMiddleware
func GetIdentity(c echo.Context) (models.Identity, bool) {
	userID, _ := c.Get(ContextUserID).(string)
	role, _ := c.Get(ContextRole).(models.Role)
	if userID == "" || role == "" {
		return models.Identity{}, false
	}
	return models.Identity{UserID: userID, Role: role}, true
}

// GetClaims returns the verified token claims stored by JWTMiddleware
func GetClaims(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(ContextClaims).(*utils.Claims)
	return claims, ok && claims != nil
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: msg})
}
