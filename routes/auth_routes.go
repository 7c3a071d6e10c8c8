package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/localxp/localxp_backend/controllers"
)

// RegisterAuthRoutes sets up signup, login and session routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController, auth echo.MiddlewareFunc) {
	e.POST("/api/auth/tourist/signup", authController.TouristSignup)
	e.POST("/api/auth/provider/signup", authController.ProviderSignup)
	e.POST("/api/auth/login", authController.Login)

	e.POST("/api/auth/logout", authController.Logout, auth)
	e.GET("/api/auth/me", authController.Me, auth)
}

// RegisterPublicRoutes sets up the routes that need no token
func RegisterPublicRoutes(e *echo.Echo, deps Dependencies) {
	e.POST("/api/contact", deps.Contact.Submit)
	e.GET("/api/providers", deps.Providers.PublicList)
	e.GET("/api/providers/:id", deps.Providers.PublicGet)
	e.GET("/api/products/pricing", deps.Bookings.Pricing)
	e.POST("/api/bookings/quote", deps.Bookings.Quote)
}
