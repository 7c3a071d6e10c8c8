package routes

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/localxp/localxp_backend/models"
)

// RegisterFileRoutes serves stored uploads under /Uploads/*
func RegisterFileRoutes(e *echo.Echo, uploadDir string) {
	e.GET("/Uploads/*", ServeFile(uploadDir))
}

// ServeFile returns a handler serving files below root with security checks
func ServeFile(root string) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Param("*")
		if path == "" {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
		}

		// Clean the path to prevent directory traversal
		cleanPath := filepath.Clean("/" + path)
		if strings.Contains(path, "..") {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "access denied"})
		}
		fullPath := filepath.Join(root, cleanPath)

		info, err := os.Stat(fullPath)
		if err != nil {
			if os.IsNotExist(err) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
			}
			log.Printf("Error accessing file %s: %v", fullPath, err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "error accessing file"})
		}
		if info.IsDir() {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "directory listing not allowed"})
		}

		// uploads get uuid names and never change
		c.Response().Header().Set("Cache-Control", "public, max-age=31536000")
		c.Response().Header().Set("Expires", time.Now().AddDate(1, 0, 0).Format(http.TimeFormat))
		return c.File(fullPath)
	}
}
