package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	ws "github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

type Client struct {
	Hub  *Hub
	Conn *ws.Conn
	Send chan []byte

	// UserID is empty for anonymous connections.
	UserID string
}

func NewClient(hub *Hub, conn *ws.Conn, userID string) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
		UserID: userID,
	}
}

func (c *Client) IsAnonymous() bool {
	return c.UserID == ""
}

// ReadPump consumes inbound frames until the connection fails, then leaves the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if ws.IsUnexpectedCloseError(err, ws.CloseGoingAway, ws.CloseAbnormalClosure, ws.CloseNormalClosure) {
				slog.Warn("Websocket read failed", "error", err, "userID", c.UserID)
			}
			return
		}

		c.handle(data)
	}
}

func (c *Client) handle(data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Debug("Ignoring malformed websocket frame", "userID", c.UserID)
		return
	}

	switch msg.Type {
	case "ping", "pingServer":
		c.Hub.reply(c, NewEvent(EventPong, PongPayload{
			OK:   true,
			Time: time.Now().UnixMilli(),
		}))
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(ws.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(ws.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(ws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
