package adapter

import (
	"DonaTalkAPI/internal/config"
	"context"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// EventStreamAdapter exports chat events to a Kafka topic.
type EventStreamAdapter struct {
	writer messageWriter
	topic  string
}

func NewEventStreamAdapter(cfg *config.AppConfig) *EventStreamAdapter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
		Async:        true,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				slog.Warn("Failed to export chat events", "error", err, "count", len(messages))
			}
		},
	}

	slog.Info("Chat event export enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)

	return &EventStreamAdapter{writer: w, topic: cfg.KafkaTopic}
}

func NewEventStreamAdapterWithWriter(writer messageWriter, topic string) *EventStreamAdapter {
	return &EventStreamAdapter{writer: writer, topic: topic}
}

// Publish writes one record; key keeps all events of a user on one partition.
func (a *EventStreamAdapter) Publish(ctx context.Context, key string, value []byte) error {
	return a.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

func (a *EventStreamAdapter) Topic() string {
	return a.topic
}

func (a *EventStreamAdapter) Close() error {
	return a.writer.Close()
}
