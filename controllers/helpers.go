package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/services"
)

// respondError renders err as an ErrorResponse with the status of its kind
func respondError(c echo.Context, err error) error {
	ae := services.AsAppError(err)
	if ae.Kind == services.KindUnexpected {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(ae.Status(), models.ErrorResponse{Error: ae.Message, Details: ae.Details})
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.Response{Status: status, Message: message, Data: data})
}

// bindJSON binds the request body and runs the echo validator when one is set.
// A validation failure is reported with the missing message.
func bindJSON(c echo.Context, req interface{}, missing string) error {
	if err := c.Bind(req); err != nil {
		return &services.AppError{Kind: services.KindValidation, Message: "invalid request body", Details: bindDetails(err)}
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return &services.AppError{Kind: services.KindValidation, Message: missing, Details: fieldErrors(err)}
	}
	return nil
}

// fieldErrors lists the JSON names of the fields that failed validation
func fieldErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return "missing: " + strings.Join(names, ", ")
}

func bindDetails(err error) string {
	if he, ok := err.(*echo.HTTPError); ok && he.Internal != nil {
		return he.Internal.Error()
	}
	return err.Error()
}

// formData returns the text values and files of a multipart or urlencoded body
func formData(c echo.Context) (url.Values, map[string][]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err == nil {
		return url.Values(form.Value), form.File, nil
	}
	if err != http.ErrNotMultipart {
		return nil, nil, &services.AppError{Kind: services.KindValidation, Message: "invalid multipart form", Details: err.Error()}
	}
	values, err := c.FormParams()
	if err != nil {
		return nil, nil, &services.AppError{Kind: services.KindValidation, Message: "invalid form", Details: err.Error()}
	}
	return values, nil, nil
}

func providerForm(values url.Values) models.ProviderForm {
	return models.ProviderForm{
		ServiceName: values.Get("serviceName"),
		FullName:    values.Get("fullName"),
		Email:       values.Get("email"),
		Contact:     values.Get("contact"),
		Category:    values.Get("category"),
		Location:    values.Get("location"),
		Price:       values.Get("price"),
		Description: values.Get("description"),
		Password:    values.Get("password"),
		Approved:    values.Get("approved"),
	}
}

func providerUpdate(values url.Values) models.ProviderUpdate {
	field := func(name string) *string {
		if _, ok := values[name]; !ok {
			return nil
		}
		v := values.Get(name)
		return &v
	}
	return models.ProviderUpdate{
		ServiceName: field("serviceName"),
		FullName:    field("fullName"),
		Email:       field("email"),
		Contact:     field("contact"),
		Category:    field("category"),
		Location:    field("location"),
		Price:       field("price"),
		Description: field("description"),
		Password:    field("password"),
		Approved:    field("approved"),
	}
}

func providerFiles(files map[string][]*multipart.FileHeader) services.ProviderFiles {
	return services.ProviderFiles{
		ProfilePicture: files["profilePicture"],
		Photos:         files["photos"],
	}
}
