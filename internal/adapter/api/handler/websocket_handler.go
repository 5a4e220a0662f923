package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"iecnexus/internal/infrastructure/firebase"
	"iecnexus/internal/infrastructure/websocket"
	"iecnexus/pkg/logger"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub        *websocket.Hub
	authClient *firebase.AuthClient
}

func NewWebSocketHandler(hub *websocket.Hub, authClient *firebase.AuthClient) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		authClient: authClient,
	}
}

// Connect upgrades the request to a WebSocket. Browsers cannot set headers on
// the upgrade request, so the ID token travels as a query parameter.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.NoContent(http.StatusUnauthorized)
	}

	identity, err := h.authClient.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return c.NoContent(http.StatusUnauthorized)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("ws upgrade failed: %v", err)
		return err
	}

	client := &websocket.Client{
		UserID: identity.UID,
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump(h.hub)

	return nil
}
