package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// EventPublisher writes keyed records to an event stream.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type StreamRecord struct {
	Type      EventType   `json:"type"`
	UserID    string      `json:"userId,omitempty"`
	Broadcast bool        `json:"broadcast,omitempty"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

const broadcastKey = "broadcast"

// StreamNotifier exports every event to an event stream, one record per target user.
type StreamNotifier struct {
	publisher EventPublisher
	timeout   time.Duration
}

func NewStreamNotifier(publisher EventPublisher) *StreamNotifier {
	return &StreamNotifier{
		publisher: publisher,
		timeout:   5 * time.Second,
	}
}

func (n *StreamNotifier) Emit(event EventType, payload interface{}, userIDs ...string) {
	for _, userID := range dedupe(userIDs) {
		n.publish(userID, StreamRecord{
			Type:      event,
			UserID:    userID,
			Payload:   payload,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

func (n *StreamNotifier) Broadcast(event EventType, payload interface{}) {
	n.publish(broadcastKey, StreamRecord{
		Type:      event,
		Broadcast: true,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (n *StreamNotifier) publish(key string, record StreamRecord) {
	value, err := json.Marshal(record)
	if err != nil {
		slog.Error("Failed to marshal stream record", "error", err, "event", record.Type)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, key, value); err != nil {
		slog.Warn("Failed to export event", "error", err, "event", record.Type, "key", key)
	}
}
