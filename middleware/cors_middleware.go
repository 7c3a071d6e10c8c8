package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// devOrigins are allowed in development in addition to configured origins
var devOrigins = []string{
	"http://localhost:3000", // React dev server
	"http://localhost:5173", // Vite dev server
	"http://localhost:8080",
}

// CORSOrigins returns the allow-list for the environment. Production only
// trusts explicitly configured origins.
func CORSOrigins(production bool, configured []string) []string {
	origins := append([]string{}, configured...)
	if !production {
		origins = append(origins, devOrigins...)
	}
	return origins
}

// GlobalCORS creates the global CORS middleware
func GlobalCORS(origins []string) echo.MiddlewareFunc {
	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, echo.HeaderXRequestedWith,
		},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentLength, echo.HeaderContentType},
		MaxAge:           86400, // 24 hours
	})
}
