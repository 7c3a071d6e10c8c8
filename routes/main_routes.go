package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localxp/localxp_backend/controllers"
	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/websocket"
)

// Dependencies carries everything the route groups need
type Dependencies struct {
	Auth      *controllers.AuthController
	Providers *controllers.ProviderController
	Tourists  *controllers.TouristController
	Bookings  *controllers.BookingController
	Contact   *controllers.ContactController

	Tokens    middleware.TokenParser
	Blacklist middleware.TokenBlacklist
	Hub       *websocket.Hub

	AllowedOrigins []string
	UploadDir      string
}

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	health := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}
	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", health)
	e.Match([]string{http.MethodGet, http.MethodHead}, "/api/health", health)

	auth := middleware.JWTMiddleware(deps.Tokens, deps.Blacklist)

	RegisterFileRoutes(e, deps.UploadDir)
	RegisterAuthRoutes(e, deps.Auth, auth)
	RegisterPublicRoutes(e, deps)
	RegisterBookingRoutes(e, deps.Bookings, auth)
	RegisterAdminRoutes(e, deps, auth)
}
