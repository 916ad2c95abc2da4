package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codespace-shop/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(newKafkaWriter(brokers, topic))
}

// newKafkaWriter makes one delivery attempt per event. Publishing sits on the
// checkout path, so a broker outage surfaces as a single logged failure.
func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  1,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 2 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.L().Warn("kafka delivery failed",
					zap.Int("messages", len(messages)),
					zap.Error(err),
				)
			}
		},
	}
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now}
}

// PublishOrderPlaced writes the event keyed by order id so all events of an
// order land on the same partition.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error {
	if evt.EventID == "" {
		evt.EventID = uuid.NewString()
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = p.now().UTC()
	}
	evt.Type = TypeOrderPlaced

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("write %s event: %w", evt.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
