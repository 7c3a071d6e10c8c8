package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/middleware"
	"github.com/localxp/localxp_backend/models"
)

// AdminHandler upgrades an admin dashboard connection. Browsers cannot set
// headers on websocket requests, so the bearer token comes in ?token=.
func AdminHandler(hub *Hub, tokens middleware.TokenParser, blacklist middleware.TokenBlacklist, allowedOrigins []string) echo.HandlerFunc {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origins[origin]
		},
	}

	return func(c echo.Context) error {
		raw := c.QueryParam("token")
		if raw == "" {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "token query parameter is required"})
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
		}
		if blacklist != nil {
			revoked, err := blacklist.IsRevoked(c.Request().Context(), claims.Id)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to verify token"})
			}
			if revoked {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "token revoked"})
			}
		}
		if claims.Role != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "access denied for your role"})
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			c.Logger().Errorf("WebSocket upgrade failed: %v", err)
			return nil
		}

		client := &Client{UserID: claims.ID, conn: conn, send: make(chan Notification, sendBufferSize)}
		client.send <- Notification{
			Type:      EventConnected,
			Message:   "WebSocket connection established",
			Timestamp: time.Now().UTC(),
		}
		if !hub.attach(client) {
			conn.Close()
			return nil
		}

		go client.writePump()
		go client.readPump(hub)
		return nil
	}
}
