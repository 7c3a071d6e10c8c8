package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/services"
)

// ContactController handles the public contact form and its admin inbox
type ContactController struct {
	messages *services.ContactService
}

func NewContactController(messages *services.ContactService) *ContactController {
	return &ContactController{messages: messages}
}

// Submit handles the public POST /api/contact
func (cc *ContactController) Submit(c echo.Context) error {
	var req models.ContactRequest
	if err := bindJSON(c, &req, "name, email and message are required"); err != nil {
		return respondError(c, err)
	}
	msg, err := cc.messages.Submit(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Message received", msg)
}

func (cc *ContactController) List(c echo.Context) error {
	messages, err := cc.messages.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Messages retrieved successfully", messages)
}

func (cc *ContactController) Delete(c echo.Context) error {
	if err := cc.messages.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Message deleted successfully", nil)
}
