package websocket

import "time"

type EventType string

const (
	EventChatCreated      EventType = "chatCreated"
	EventChatUpdated      EventType = "chatUpdated"
	EventChatDeleted      EventType = "chatDeleted"
	EventNewMessage       EventType = "newMessage"
	EventAddedToGroup     EventType = "addedToGroup"
	EventRemovedFromGroup EventType = "removedFromGroup"

	EventPong EventType = "pong"
)

type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	Meta    *EventMeta  `json:"meta,omitempty"`
}

type EventMeta struct {
	Timestamp int64 `json:"timestamp"`
}

func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{
		Type:    eventType,
		Payload: payload,
		Meta: &EventMeta{
			Timestamp: time.Now().UnixMilli(),
		},
	}
}

// Delivery is one event addressed either to user rooms or to every connection.
type Delivery struct {
	Event     Event    `json:"event"`
	Targets   []string `json:"targets,omitempty"`
	Broadcast bool     `json:"broadcast,omitempty"`
}

type inboundMessage struct {
	Type string `json:"type"`
}

type PongPayload struct {
	OK   bool  `json:"ok"`
	Time int64 `json:"time"`
}
