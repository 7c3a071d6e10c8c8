package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/services"
)

// AuthController handles signup, login, logout and identity endpoints
type AuthController struct {
	auth      *services.AuthService
	blacklist middleware.TokenBlacklist
}

func NewAuthController(auth *services.AuthService, blacklist middleware.TokenBlacklist) *AuthController {
	return &AuthController{auth: auth, blacklist: blacklist}
}

// TouristSignup handles POST /api/auth/tourist/signup
func (ac *AuthController) TouristSignup(c echo.Context) error {
	var req models.TouristSignupRequest
	if err := bindJSON(c, &req, "all fields are required"); err != nil {
		return respondError(c, err)
	}

	resp, err := ac.auth.SignupTourist(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// ProviderSignup handles the multipart POST /api/auth/provider/signup
func (ac *AuthController) ProviderSignup(c echo.Context) error {
	values, files, err := formData(c)
	if err != nil {
		return respondError(c, err)
	}

	form := providerForm(values)
	form.Approved = ""
	resp, err := ac.auth.SignupProvider(c.Request().Context(), form, providerFiles(files))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindJSON(c, &req, "role and password are required"); err != nil {
		return respondError(c, err)
	}

	resp, err := ac.auth.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented token until it expires
func (ac *AuthController) Logout(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return respondError(c, services.Unauthenticated("invalid token"))
	}
	if err := ac.blacklist.Revoke(c.Request().Context(), claims.Id, claims.ExpiresAtTime()); err != nil {
		return respondError(c, services.Unexpected("failed to revoke token", err))
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the authenticated account
func (ac *AuthController) Me(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return respondError(c, services.Unauthenticated("invalid token"))
	}
	account, err := ac.auth.Me(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Account retrieved successfully", account)
}
