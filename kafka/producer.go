package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/order"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderProducer publishes order.placed events keyed by order id.
type OrderProducer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewOrderProducer(brokers []string, topic string, logger *zap.Logger) *OrderProducer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
	logger.Info("Kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &OrderProducer{writer: w, topic: topic, logger: logger}
}

func (p *OrderProducer) PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Event)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish order event",
			zap.String("order_id", event.OrderID),
			zap.String("topic", p.topic),
			zap.Error(err),
		)
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	p.logger.Debug("Order event published", zap.String("order_id", event.OrderID), zap.String("topic", p.topic))
	return nil
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
