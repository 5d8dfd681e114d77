package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront-service/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func TestOrderProducer_PublishOrderPlaced(t *testing.T) {
	w := &mockWriter{}
	p := &OrderProducer{writer: w, topic: "order.placed", logger: zap.NewNop()}

	event := order.PlacedEvent{
		Event:       order.EventOrderPlaced,
		OrderID:     "ORD-123456",
		SessionID:   "s-1",
		ItemCount:   3,
		Total:       "151.19",
		PaymentType: "paypal",
		Country:     "United States",
		Timestamp:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "ORD-123456", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.placed", string(msg.Headers[0].Value))

	var decoded order.PlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestOrderProducer_WriteError(t *testing.T) {
	w := &mockWriter{err: errors.New("broker down")}
	p := &OrderProducer{writer: w, topic: "order.placed", logger: zap.NewNop()}

	err := p.PublishOrderPlaced(context.Background(), order.PlacedEvent{OrderID: "ORD-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
