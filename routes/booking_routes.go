package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/localxp/localxp_backend/controllers"
	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/models"
)

// RegisterBookingRoutes sets up the tourist and provider booking routes
func RegisterBookingRoutes(e *echo.Echo, bookingController *controllers.BookingController, auth echo.MiddlewareFunc) {
	tourist := e.Group("/api/bookings", auth, middleware.RequireRole(models.RoleTourist))
	tourist.POST("", bookingController.TouristCreate)
	tourist.GET("/my", bookingController.MyBookings)

	provider := e.Group("/api/provider", auth, middleware.RequireRole(models.RoleProvider))
	provider.GET("/bookings", bookingController.ProviderBookings)
}
