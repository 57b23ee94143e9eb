package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub keeps the live connections grouped into rooms keyed by user id.
// Anonymous connections have no room and only receive broadcasts.
type Hub struct {
	clients     map[*Client]bool
	userClients map[string]map[*Client]bool
	Register    chan *Client
	Unregister  chan *Client

	done     chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		clients:     make(map[*Client]bool),
		userClients: make(map[string]map[*Client]bool),
		done:        make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			if !client.IsAnonymous() {
				if _, ok := h.userClients[client.UserID]; !ok {
					h.userClients[client.UserID] = make(map[*Client]bool)
				}
				h.userClients[client.UserID][client] = true
			}
			h.mu.Unlock()
			slog.Debug("Websocket client joined", "userID", client.UserID, "anonymous", client.IsAnonymous())

		case client := <-h.Unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		}
	}
}

// Stop ends Run and closes every connection's send channel.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.Send)

	if userSet, ok := h.userClients[client.UserID]; ok {
		delete(userSet, client)
		if len(userSet) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.remove(client)
	}
}

// Dispatch delivers a Delivery to the connections of this process.
func (h *Hub) Dispatch(_ context.Context, d Delivery) error {
	if d.Broadcast {
		h.BroadcastAll(d.Event)
		return nil
	}

	for _, userID := range dedupe(d.Targets) {
		h.BroadcastToUser(userID, d.Event)
	}
	return nil
}

func (h *Hub) BroadcastToUser(userID string, event Event) {
	if userID == "" {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.userClients[userID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "error", err, "event", event.Type)
		return
	}

	for client := range clients {
		h.send(client, data)
	}
}

func (h *Hub) BroadcastAll(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "error", err, "event", event.Type)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		h.send(client, data)
	}
}

// send never blocks; a client whose buffer is full is dropped.
func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		slog.Warn("Websocket client too slow, dropping connection", "userID", client.UserID)
		go h.unregister(client)
	}
}

func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Join registers client unless the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// reply sends an event to one connection if it is still registered.
func (h *Hub) reply(client *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "error", err, "event", event.Type)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.clients[client] {
		h.send(client, data)
	}
}
