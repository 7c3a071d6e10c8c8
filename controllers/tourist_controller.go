package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/services"
)

// TouristController is the admin tourist CRUD
type TouristController struct {
	tourists *services.TouristService
}

func NewTouristController(tourists *services.TouristService) *TouristController {
	return &TouristController{tourists: tourists}
}

func (tc *TouristController) List(c echo.Context) error {
	tourists, err := tc.tourists.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Tourists retrieved successfully", tourists)
}

func (tc *TouristController) Create(c echo.Context) error {
	var req models.TouristSignupRequest
	if err := bindJSON(c, &req, "all fields are required"); err != nil {
		return respondError(c, err)
	}
	tourist, err := tc.tourists.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Tourist created successfully", tourist)
}

func (tc *TouristController) Update(c echo.Context) error {
	var req models.TouristUpdateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, &services.AppError{Kind: services.KindValidation, Message: "invalid request body", Details: bindDetails(err)})
	}
	tourist, err := tc.tourists.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Tourist updated successfully", tourist)
}

func (tc *TouristController) Delete(c echo.Context) error {
	if err := tc.tourists.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Tourist deleted successfully", nil)
}
