package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/hamper-shop/internal/logger"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Producer streams session events to a topic. The writer runs in async
// mode, so Publish never waits for the broker.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string, log zerolog.Logger) *Producer {
	l := logger.Component(log, "kafka").With().Str("topic", topic).Logger()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				l.Warn().Err(err).Int("messages", len(messages)).Msg("session event delivery failed")
			}
		},
	}
	return &Producer{writer: writer}
}

// Publish encodes event as JSON keyed by the aggregate id.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	msg, err := NewMessage(key, event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NewMessage builds the wire message for an event.
func NewMessage(key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}, nil
}
