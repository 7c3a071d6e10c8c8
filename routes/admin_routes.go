package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/websocket"
)

// RegisterAdminRoutes sets up all admin-related routes
func RegisterAdminRoutes(e *echo.Echo, deps Dependencies, auth echo.MiddlewareFunc) {
	// admin sockets authenticate with ?token=
	e.GET("/api/admin/ws", websocket.AdminHandler(deps.Hub, deps.Tokens, deps.Blacklist, deps.AllowedOrigins))

	protected := e.Group("/api/admin", auth, middleware.RequireRole(models.RoleAdmin))

	// Provider management
	protected.GET("/providers", deps.Providers.List)
	protected.GET("/pending-providers", deps.Providers.ListPending)
	protected.POST("/providers", deps.Providers.Create)
	protected.PUT("/providers/:id", deps.Providers.Update)
	protected.DELETE("/providers/:id", deps.Providers.Delete)
	protected.PUT("/providers/:id/approve", deps.Providers.Approve)

	// Tourist management
	protected.GET("/tourists", deps.Tourists.List)
	protected.POST("/tourists", deps.Tourists.Create)
	protected.PUT("/tourists/:id", deps.Tourists.Update)
	protected.DELETE("/tourists/:id", deps.Tourists.Delete)

	// Bookings
	protected.GET("/bookings/admin", deps.Bookings.AdminList)
	protected.POST("/bookings/admin", deps.Bookings.AdminCreate)
	protected.PUT("/bookings/admin/:id/approve", deps.Bookings.Approve)
	protected.DELETE("/bookings/admin/:id", deps.Bookings.Delete)
	protected.GET("/bookings/admin/:id/qrcode", deps.Bookings.VoucherQRCode)

	// Contact inbox
	protected.GET("/contact-messages", deps.Contact.List)
	protected.DELETE("/contact-messages/:id", deps.Contact.Delete)
}
