package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/utils"
)

func startServer(t *testing.T) (*Hub, *utils.TokenManager, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)

	tokens := utils.NewTokenManager("ws-secret")
	e := echo.New()
	e.GET("/api/admin/ws", AdminHandler(hub, tokens, middleware.NewMemoryBlacklist(), nil))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return hub, tokens, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/ws?token=" + token
}

func TestAdminHandler_BroadcastsEvents(t *testing.T) {
	hub, tokens, srv := startServer(t)
	token, _ := tokens.Issue("admin-1", models.RoleAdmin)

	conn, _, err := gorilla.DefaultDialer.Dial(wsURL(srv, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello Notification
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != EventConnected {
		t.Fatalf("expected connected event, got %+v (%v)", hello, err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	hub.NotifyAdmins(EventBookingCreated, "A new booking was created", map[string]string{"productType": "Village Tour"})

	var event Notification
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.Type != EventBookingCreated {
		t.Fatalf("expected %s, got %s", EventBookingCreated, event.Type)
	}
}

func TestAdminHandler_RejectsNonAdmins(t *testing.T) {
	_, tokens, srv := startServer(t)
	tourist, _ := tokens.Issue("t-1", models.RoleTourist)

	tests := []struct {
		name  string
		token string
		code  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "abc", http.StatusUnauthorized},
		{"tourist", tourist, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := gorilla.DefaultDialer.Dial(wsURL(srv, tt.token), nil)
			if err == nil {
				t.Fatalf("expected handshake to fail")
			}
			if resp == nil || resp.StatusCode != tt.code {
				t.Fatalf("expected status %d, got %v", tt.code, resp)
			}
		})
	}
}

func TestNotifyAdmins_DoesNotBlockWithoutRun(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.NotifyAdmins(EventContactMessage, "x", nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("NotifyAdmins blocked")
	}
}
