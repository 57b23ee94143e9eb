package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// PubSub is the subset of the redis adapter the relay needs.
type PubSub interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) *redis.PubSub
}

// Relay shares deliveries between server instances over a Redis channel.
// Every instance, the publisher included, delivers what it receives to its own hub.
type Relay struct {
	pubsub  PubSub
	channel string
	hub     *Hub
}

func NewRelay(pubsub PubSub, channel string, hub *Hub) *Relay {
	return &Relay{
		pubsub:  pubsub,
		channel: channel,
		hub:     hub,
	}
}

func (r *Relay) Dispatch(ctx context.Context, d Delivery) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal delivery: %w", err)
	}

	if err := r.pubsub.Publish(ctx, r.channel, payload); err != nil {
		return fmt.Errorf("publish delivery: %w", err)
	}
	return nil
}

// Subscribe blocks until the subscription is confirmed, then forwards messages
// to the hub until ctx is cancelled.
func (r *Relay) Subscribe(ctx context.Context) error {
	sub := r.pubsub.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	go func() {
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.deliver(ctx, msg.Payload)
			}
		}
	}()

	slog.Info("Realtime relay subscribed", "channel", r.channel)
	return nil
}

func (r *Relay) deliver(ctx context.Context, payload string) {
	var d Delivery
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		slog.Warn("Dropping malformed relay message", "error", err)
		return
	}

	if err := r.hub.Dispatch(ctx, d); err != nil {
		slog.Warn("Failed to deliver relayed event", "error", err, "event", d.Event.Type)
	}
}
