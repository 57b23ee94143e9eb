package controller

import (
	"DonaTalkAPI/internal/websocket"
	"log/slog"
	"net/http"

	ws "github.com/gorilla/websocket"
)

type WebSocketController struct {
	hub         *websocket.Hub
	credentials *websocket.CredentialChain
}

func NewWebSocketController(hub *websocket.Hub, credentials *websocket.CredentialChain) *WebSocketController {
	return &WebSocketController{
		hub:         hub,
		credentials: credentials,
	}
}

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS godoc
// @Summary      WebSocket Connection
// @Description  Upgrade to a WebSocket. The identity is taken from the 'token' query param, the Authorization header or the jwt cookie, in that order. Connections without a valid identity stay anonymous and only receive broadcasts.
// @Tags         websocket
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      429  {object}  helper.ResponseError
// @Router       /ws [get]
func (c *WebSocketController) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := c.credentials.Authenticate(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "error", err)
		return
	}

	client := websocket.NewClient(c.hub, conn, userID)
	if !c.hub.Join(client) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
