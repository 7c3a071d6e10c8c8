package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/utils"
)

const testSecret = "middleware-secret"

func identityHandler(c echo.Context) error {
	identity, ok := GetIdentity(c)
	if !ok {
		return c.NoContent(http.StatusTeapot)
	}
	return c.JSON(http.StatusOK, identity)
}

func serve(t *testing.T, h echo.HandlerFunc, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not an error body: %s", rec.Body.String())
	}
	return body.Error
}

func TestJWTMiddleware_AcceptsValidToken(t *testing.T) {
	tokens := utils.NewTokenManager(testSecret)
	token, err := tokens.Issue("64b7f0c2a1e4d3f2b1a09876", models.RoleTourist)
	if err != nil {
		t.Fatal(err)
	}

	rec := serve(t, JWTMiddleware(tokens, NewMemoryBlacklist())(identityHandler), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var identity models.Identity
	json.Unmarshal(rec.Body.Bytes(), &identity)
	if identity.UserID != "64b7f0c2a1e4d3f2b1a09876" || identity.Role != models.RoleTourist {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	tokens := utils.NewTokenManager(testSecret)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.Claims{
		ID:   "64b7f0c2a1e4d3f2b1a09876",
		Role: models.RoleAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		},
	})
	expiredToken, _ := expired.SignedString([]byte(testSecret))
	foreign, _ := utils.NewTokenManager("someone-else").Issue("x", models.RoleAdmin)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "missing or malformed authorization header"},
		{"wrong scheme", "Basic abc", "missing or malformed authorization header"},
		{"no token", "Bearer", "missing or malformed authorization header"},
		{"garbage", "Bearer abc.def.ghi", "invalid token"},
		{"wrong signature", "Bearer " + foreign, "invalid token"},
		{"expired", "Bearer " + expiredToken, "token expired"},
	}

	h := JWTMiddleware(tokens, NewMemoryBlacklist())(identityHandler)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if got := errorOf(t, rec); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestJWTMiddleware_RevokedToken(t *testing.T) {
	tokens := utils.NewTokenManager(testSecret)
	blacklist := NewMemoryBlacklist()
	token, _ := tokens.Issue("64b7f0c2a1e4d3f2b1a09876", models.RoleProvider)
	claims, _ := tokens.Parse(token)

	if err := blacklist.Revoke(context.Background(), claims.Id, claims.ExpiresAtTime()); err != nil {
		t.Fatal(err)
	}

	rec := serve(t, JWTMiddleware(tokens, blacklist)(identityHandler), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized || errorOf(t, rec) != "token revoked" {
		t.Fatalf("expected 401 token revoked, got %d %s", rec.Code, rec.Body.String())
	}

	other, _ := tokens.Issue("64b7f0c2a1e4d3f2b1a09876", models.RoleProvider)
	rec = serve(t, JWTMiddleware(tokens, blacklist)(identityHandler), "Bearer "+other)
	if rec.Code != http.StatusOK {
		t.Fatalf("a fresh token for the same user must still work, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := utils.NewTokenManager(testSecret)
	chain := func(roles ...models.Role) echo.HandlerFunc {
		return JWTMiddleware(tokens, nil)(RequireRole(roles...)(identityHandler))
	}
	tourist, _ := tokens.Issue("t1", models.RoleTourist)
	admin, _ := tokens.Issue("a1", models.RoleAdmin)

	if rec := serve(t, chain(models.RoleAdmin), "Bearer "+tourist); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for tourist on admin route, got %d", rec.Code)
	}
	if rec := serve(t, chain(models.RoleAdmin), "Bearer "+admin); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
	if rec := serve(t, chain(models.RoleTourist, models.RoleProvider), "Bearer "+tourist); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for tourist, got %d", rec.Code)
	}
	if rec := serve(t, RequireRole(models.RoleAdmin)(identityHandler), ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}

func TestMemoryBlacklist_Cleanup(t *testing.T) {
	bl := NewMemoryBlacklist()
	now := time.Now()
	bl.now = func() time.Time { return now }
	ctx := context.Background()

	bl.Revoke(ctx, "old", now.Add(-time.Second))
	bl.Revoke(ctx, "live", now.Add(time.Hour))

	if revoked, _ := bl.IsRevoked(ctx, "old"); revoked {
		t.Fatalf("expired entries must not count as revoked")
	}
	if revoked, _ := bl.IsRevoked(ctx, "live"); !revoked {
		t.Fatalf("live entry must be revoked")
	}

	bl.Cleanup()
	if bl.size() != 1 {
		t.Fatalf("expected 1 entry after cleanup, got %d", bl.size())
	}
}
