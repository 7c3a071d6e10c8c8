package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/services"
	"github.com/localxp/localxp_backend/utils"
)

// BookingController handles booking-related API endpoints
type BookingController struct {
	bookings *services.BookingService
}

// NewBookingController creates a new booking controller
func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

func bindBooking(c echo.Context) (models.BookingRequest, error) {
	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return req, &services.AppError{Kind: services.KindValidation, Message: "invalid request body", Details: bindDetails(err)}
	}
	return req, nil
}

// AdminList handles GET /api/admin/bookings/admin with optional
// touristId and providerId query filters
func (bc *BookingController) AdminList(c echo.Context) error {
	var filter repositories.BookingFilter
	if v := c.QueryParam("touristId"); v != "" {
		oid, ok := utils.ParseObjectID(v)
		if !ok {
			return respondError(c, services.Validation("invalid touristId"))
		}
		filter.TouristID = oid
	}
	if v := c.QueryParam("providerId"); v != "" {
		oid, ok := utils.ParseObjectID(v)
		if !ok {
			return respondError(c, services.Validation("invalid providerId"))
		}
		filter.ProviderID = oid
	}

	bookings, err := bc.bookings.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// AdminCreate handles POST /api/admin/bookings/admin
func (bc *BookingController) AdminCreate(c echo.Context) error {
	req, err := bindBooking(c)
	if err != nil {
		return respondError(c, err)
	}
	booking, err := bc.bookings.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Booking created successfully", booking)
}

func (bc *BookingController) Approve(c echo.Context) error {
	booking, err := bc.bookings.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Booking approved successfully", booking)
}

func (bc *BookingController) Delete(c echo.Context) error {
	if err := bc.bookings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Booking deleted successfully", nil)
}

// VoucherQRCode streams the PNG voucher of a confirmed booking
func (bc *BookingController) VoucherQRCode(c echo.Context) error {
	png, err := bc.bookings.VoucherQRCode(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// TouristCreate handles POST /api/bookings. The tourist is taken from the
// token and the status always starts as pending.
func (bc *BookingController) TouristCreate(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return respondError(c, services.Unauthenticated("invalid token"))
	}
	req, err := bindBooking(c)
	if err != nil {
		return respondError(c, err)
	}
	req.TouristID = identity.UserID
	req.Status = ""

	booking, err := bc.bookings.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Booking created successfully", booking)
}

// MyBookings handles GET /api/bookings/my
func (bc *BookingController) MyBookings(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return respondError(c, services.Unauthenticated("invalid token"))
	}
	bookings, err := bc.bookings.ListForTourist(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// ProviderBookings handles GET /api/provider/bookings
func (bc *BookingController) ProviderBookings(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return respondError(c, services.Unauthenticated("invalid token"))
	}
	bookings, err := bc.bookings.ListForProvider(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// Quote prices a booking request without storing it
func (bc *BookingController) Quote(c echo.Context) error {
	req, err := bindBooking(c)
	if err != nil {
		return respondError(c, err)
	}
	quote, err := bc.bookings.Quote(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Quote calculated successfully", quote)
}

// Pricing lists the product tier table
func (bc *BookingController) Pricing(c echo.Context) error {
	return respond(c, http.StatusOK, "Pricing retrieved successfully", services.PriceList())
}
