package testutil

import (
	"DonaTalkAPI/internal/websocket"
	"slices"
	"sync"
)

// Notification is one recorded Emit or Broadcast call.
type Notification struct {
	Event     websocket.EventType
	Payload   interface{}
	Targets   []string
	Broadcast bool
}

// RecordingNotifier stores every notification it receives.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []Notification
}

func (n *RecordingNotifier) Emit(event websocket.EventType, payload interface{}, userIDs ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Notification{Event: event, Payload: payload, Targets: slices.Clone(userIDs)})
}

func (n *RecordingNotifier) Broadcast(event websocket.EventType, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Notification{Event: event, Payload: payload, Broadcast: true})
}

func (n *RecordingNotifier) All() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.events)
}

// Of returns the recorded notifications of one event type.
func (n *RecordingNotifier) Of(event websocket.EventType) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notification, 0)
	for _, e := range n.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// TargetsOf returns every user id that received event.
func (n *RecordingNotifier) TargetsOf(event websocket.EventType) []string {
	out := make([]string, 0)
	for _, e := range n.Of(event) {
		for _, t := range e.Targets {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
