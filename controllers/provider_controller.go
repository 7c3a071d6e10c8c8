package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/services"
)

// ProviderController serves the admin provider CRUD and the public catalogue
type ProviderController struct {
	providers *services.ProviderService
}

func NewProviderController(providers *services.ProviderService) *ProviderController {
	return &ProviderController{providers: providers}
}

// List handles GET /api/admin/providers
func (pc *ProviderController) List(c echo.Context) error {
	providers, err := pc.providers.List(c.Request().Context(), nil)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Providers retrieved successfully", providers)
}

// ListPending handles GET /api/admin/pending-providers
func (pc *ProviderController) ListPending(c echo.Context) error {
	approved := false
	providers, err := pc.providers.List(c.Request().Context(), &approved)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Pending providers retrieved successfully", providers)
}

// Create handles the multipart POST /api/admin/providers
func (pc *ProviderController) Create(c echo.Context) error {
	values, files, err := formData(c)
	if err != nil {
		return respondError(c, err)
	}
	provider, err := pc.providers.Create(c.Request().Context(), providerForm(values), providerFiles(files))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Provider created successfully", provider)
}

// Update handles PUT /api/admin/providers/:id
func (pc *ProviderController) Update(c echo.Context) error {
	values, files, err := formData(c)
	if err != nil {
		return respondError(c, err)
	}
	provider, err := pc.providers.Update(c.Request().Context(), c.Param("id"), providerUpdate(values), providerFiles(files))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Provider updated successfully", provider)
}

// Approve handles PUT /api/admin/providers/:id/approve
func (pc *ProviderController) Approve(c echo.Context) error {
	provider, err := pc.providers.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Provider approved successfully", provider)
}

// Delete handles DELETE /api/admin/providers/:id
func (pc *ProviderController) Delete(c echo.Context) error {
	if err := pc.providers.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Provider deleted successfully", nil)
}

// PublicList handles GET /api/providers and only shows approved providers
func (pc *ProviderController) PublicList(c echo.Context) error {
	approved := true
	providers, err := pc.providers.List(c.Request().Context(), &approved)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Providers retrieved successfully", providers)
}

// PublicGet handles GET /api/providers/:id
func (pc *ProviderController) PublicGet(c echo.Context) error {
	provider, err := pc.providers.GetApproved(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Provider retrieved successfully", provider)
}
