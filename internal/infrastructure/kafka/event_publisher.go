package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hearthloan/prequal/internal/domain/event"
	pkgkafka "github.com/hearthloan/prequal/pkg/kafka"
)

// producer is the subset of *pkgkafka.Producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing domain events to
// a single Kafka topic, keyed by aggregate ID so per-aggregate order holds.
type EventPublisher struct {
	producer producer
	topic    string
	logger   *slog.Logger
}

func NewEventPublisher(p producer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{producer: p, topic: topic, logger: logger}
}

func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"event_id":       evt.EventID().String(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
