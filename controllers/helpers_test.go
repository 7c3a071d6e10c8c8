package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/services"
)

func TestProviderUpdate_OnlyPresentFields(t *testing.T) {
	values := url.Values{"fullName": {"Kamal"}, "price": {""}}
	u := providerUpdate(values)

	if u.FullName == nil || *u.FullName != "Kamal" {
		t.Errorf("fullName = %v", u.FullName)
	}
	if u.Price == nil || *u.Price != "" {
		t.Errorf("an empty but present price must be kept, got %v", u.Price)
	}
	if u.Email != nil || u.Password != nil || u.Approved != nil {
		t.Error("absent fields must stay nil")
	}
}

func TestFormData_URLEncoded(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("location=Ella&approved=true"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	values, files, err := formData(c)
	if err != nil {
		t.Fatalf("formData: %v", err)
	}
	if files != nil {
		t.Errorf("urlencoded body has no files, got %v", files)
	}
	form := providerForm(values)
	if form.Location != "Ella" || form.Approved != "true" {
		t.Errorf("form = %+v", form)
	}
}

func TestBindJSON_ReportsMissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var body models.TouristSignupRequest
	err := bindJSON(c, &body, "all fields are required")
	ae, ok := err.(*services.AppError)
	if !ok {
		t.Fatalf("err = %v, want *AppError", err)
	}
	if ae.Kind != services.KindValidation || ae.Message != "all fields are required" {
		t.Errorf("err = %+v", ae)
	}
	if ae.Details != "missing: fullName, password, country" {
		t.Errorf("details = %q", ae.Details)
	}
}

func TestBindJSON_MalformedBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var body models.ContactRequest
	err := bindJSON(c, &body, "unused")
	if ae := services.AsAppError(err); ae.Kind != services.KindValidation || ae.Message != "invalid request body" {
		t.Errorf("err = %+v", ae)
	}
}

func TestRespondError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := respondError(c, services.NotFound("provider not found")); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"provider not found"`) {
		t.Errorf("body = %s", rec.Body)
	}
}
