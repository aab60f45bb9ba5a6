package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes CloudEvents to Kafka topics.
type Producer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewProducer creates a Producer against the given brokers.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer, logger: logger}
}

// PublishEvent writes a CloudEvent to the topic, keyed by the event source
// plus type so ordering is preserved per key.
func (p *Producer) PublishEvent(ctx context.Context, topic string, event CloudEvent) error {
	return p.Publish(ctx, topic, event.ID, event)
}

// Publish writes an arbitrary JSON payload to the topic with the given key.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}

	p.logger.Debug("published event",
		zap.String("topic", topic),
		zap.String("key", key),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
