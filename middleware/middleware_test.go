package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/services"
)

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestRateLimiter_LoginIsStrict(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter()
	h := rl.RateLimit()(okHandler)

	call := func(ip, path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = ip + ":4000"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath(path)
		h(c)
		return rec.Code
	}

	for i := 0; i < 5; i++ {
		if code := call("198.51.100.7", "/api/auth/login"); code != http.StatusNoContent {
			t.Fatalf("attempt %d: expected 204, got %d", i+1, code)
		}
	}
	if code := call("198.51.100.7", "/api/auth/login"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
	if code := call("198.51.100.7", "/api/providers"); code != http.StatusTooManyRequests {
		t.Fatalf("blocked IP must be blocked on every path, got %d", code)
	}
	if code := call("198.51.100.8", "/api/auth/login"); code != http.StatusNoContent {
		t.Fatalf("other IPs must not be affected, got %d", code)
	}
	if code := call("198.51.100.7", "/Uploads/providers/a.png"); code != http.StatusNoContent {
		t.Fatalf("uploads must not be limited, got %d", code)
	}
}

func TestRateLimiter_IgnoresSpoofedForwardedFor(t *testing.T) {
	e := echo.New()
	extractor, err := IPExtractor(nil)
	if err != nil {
		t.Fatal(err)
	}
	e.IPExtractor = extractor
	h := NewRateLimiter().RateLimit()(okHandler)

	limited := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("192.0.2.%d", i))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/auth/login")
		h(c)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 45 {
		t.Fatalf("expected 45 of 50 logins limited, got %d", limited)
	}
}

func TestRateLimiter_CleanupEvictsIdle(t *testing.T) {
	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	rl := NewRateLimiter()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.RateLimit()(okHandler)

	call := func(ip string) {
		req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
		req.RemoteAddr = ip + ":4000"
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/providers")
		h(c)
	}
	for i := 0; i < 100; i++ {
		call(fmt.Sprintf("198.51.100.%d", i))
	}
	if n := rl.size(); n != 100 {
		t.Fatalf("expected 100 limiters, got %d", n)
	}

	now = now.Add(11 * time.Minute)
	call("198.51.100.1")
	rl.Cleanup()
	if n := rl.size(); n != 1 {
		t.Fatalf("idle limiters must be evicted, %d left", n)
	}
}

func TestIPExtractor(t *testing.T) {
	request := func(remote string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		req.Header.Set(echo.HeaderXForwardedFor, "198.51.100.20")
		return req
	}

	direct, err := IPExtractor(nil)
	if err != nil {
		t.Fatal(err)
	}
	if ip := direct(request("10.1.2.3:5000")); ip != "10.1.2.3" {
		t.Fatalf("direct extractor must ignore X-Forwarded-For, got %s", ip)
	}

	proxied, err := IPExtractor([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatal(err)
	}
	if ip := proxied(request("10.1.2.3:5000")); ip != "198.51.100.20" {
		t.Fatalf("trusted proxy must forward the client IP, got %s", ip)
	}
	if ip := proxied(request("203.0.113.9:5000")); ip != "203.0.113.9" {
		t.Fatalf("untrusted peer must not set the client IP, got %s", ip)
	}

	if _, err := IPExtractor([]string{"not-a-cidr"}); err == nil {
		t.Fatal("expected an invalid range to fail")
	}
}

func TestContentTypeGuard(t *testing.T) {
	e := echo.New()
	h := ContentTypeGuard()(okHandler)

	tests := []struct {
		method      string
		contentType string
		body        string
		want        int
	}{
		{http.MethodPost, "application/json", "{}", http.StatusNoContent},
		{http.MethodPost, "multipart/form-data; boundary=x", "--x--", http.StatusNoContent},
		{http.MethodPut, "text/plain", "hi", http.StatusBadRequest},
		{http.MethodPut, "", "", http.StatusNoContent},
		{http.MethodGet, "text/plain", "", http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/api/contact", strings.NewReader(tt.body))
		if tt.contentType != "" {
			req.Header.Set(echo.HeaderContentType, tt.contentType)
		}
		rec := httptest.NewRecorder()
		h(e.NewContext(req, rec))
		if rec.Code != tt.want {
			t.Fatalf("%s %q: expected %d, got %d", tt.method, tt.contentType, tt.want, rec.Code)
		}
		if tt.want == http.StatusBadRequest && !strings.Contains(rec.Body.String(), `"error":"unsupported content type"`) {
			t.Fatalf("unexpected body %s", rec.Body.String())
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	SecurityHeaders(SecurityConfig{HSTS: true})(okHandler)(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))

	if rec.Header().Get("X-Frame-Options") != "DENY" || rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("missing security headers: %v", rec.Header())
	}
	if !strings.Contains(rec.Header().Get("Content-Security-Policy"), "script-src 'self'") {
		t.Fatalf("unexpected CSP %q", rec.Header().Get("Content-Security-Policy"))
	}
}

func TestCORSOrigins(t *testing.T) {
	prod := CORSOrigins(true, []string{"https://localxp.example"})
	if len(prod) != 1 {
		t.Fatalf("production must only allow configured origins, got %v", prod)
	}
	dev := CORSOrigins(false, nil)
	if len(dev) != len(devOrigins) {
		t.Fatalf("development must allow local origins, got %v", dev)
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"app error", services.NotFound("booking not found"), http.StatusNotFound, `"error":"booking not found"`},
		{"conflict", services.Conflict("only confirmed bookings have a voucher"), http.StatusConflict, `"error":"only confirmed`},
		{"echo error", echo.ErrNotFound, http.StatusNotFound, `"error":"Not Found"`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `"error":"internal server error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorHandler(tt.err, e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec))
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.body) {
				t.Fatalf("expected body to contain %s, got %s", tt.body, rec.Body.String())
			}
		})
	}
}
