package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"inventra-system/internal/database/models"
)

// MovementEvent is the JSON payload published after a committed stock or
// lifecycle change.
type MovementEvent struct {
	Type      string                `json:"type"`
	TypeID    int64                 `json:"typeId"`
	ProductID string                `json:"productId,omitempty"`
	Action    models.MovementAction `json:"action"`
	Quantity  int64                 `json:"quantity"`
	Actor     int64                 `json:"actor"`
	Timestamp time.Time             `json:"timestamp"`
}

type Producer interface {
	PublishMovement(ctx context.Context, event MovementEvent) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}

	return &kafkaProducer{
		writer: writer,
	}
}

func (p *kafkaProducer) PublishMovement(ctx context.Context, event MovementEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal movement event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", event.TypeID)),
		Value: payload,
		Time:  event.Timestamp,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish movement event: %w", err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer is used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) PublishMovement(context.Context, MovementEvent) error { return nil }

func (NopProducer) Close() error { return nil }
