package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/security"
	"github.com/localxp/localxp_backend/services"
)

// ErrorHandler renders every error reaching echo as an ErrorResponse
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := models.ErrorResponse{Error: "internal server error"}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		body.Error = fmt.Sprint(he.Message)
		if he.Internal != nil && status < http.StatusInternalServerError {
			body.Details = he.Internal.Error()
		}
	} else {
		ae := services.AsAppError(err)
		status = ae.Status()
		body = models.ErrorResponse{Error: ae.Message, Details: ae.Details}
	}

	if status >= http.StatusInternalServerError {
		req := c.Request()
		c.Logger().Errorf("%s %s failed: %v (headers: %v)", req.Method, req.URL.Path, err, security.SanitizeHeaders(req.Header))
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}
