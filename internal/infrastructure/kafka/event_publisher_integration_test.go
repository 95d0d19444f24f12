//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthloan/prequal/internal/domain/event"
	pkgkafka "github.com/hearthloan/prequal/pkg/kafka"
	"github.com/hearthloan/prequal/pkg/testutil"
)

func TestEventPublisher_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)
	producer, err := pkgkafka.NewProducer(pkgkafka.Config{ClientID: "prequal-test", Brokers: kc.Brokers})
	require.NoError(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	const topic = "prequal-events-it"
	pub := NewEventPublisher(producer, topic, discardLogger())

	appID := uuid.New()
	evt := event.NewApplicationSubmitted(appID, testutil.TestUserID1, decimal.NewFromInt(250000), testutil.TestNow)
	require.NoError(t, pub.Publish(ctx, evt))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   kc.Brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	t.Cleanup(func() { _ = reader.Close() })

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, appID.String(), string(msg.Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, event.TypeApplicationSubmitted, body["event_type"])
	assert.Equal(t, evt.EventID().String(), body["event_id"])
}
