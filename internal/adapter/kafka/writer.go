package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/airport-control/internal/config"
	"github.com/couchcryptid/airport-control/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces movement events to a Kafka topic.
// It implements tower.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured movements topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaMovementsTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one movement. Messages are keyed by plane so a plane's
// movements stay ordered within a partition.
func (w *Writer) Publish(ctx context.Context, m domain.Movement) error {
	msg, err := serializeToMessage(m)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write movement %s: %w", m.ID, err)
	}
	w.logger.Debug("movement published", "movement_id", m.ID, "kind", m.Kind, "plane", m.Plane)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Movement into a Kafka message.
func serializeToMessage(m domain.Movement) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize movement: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(m.Plane),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "movement_kind", Value: []byte(m.Kind)},
			{Key: "occurred_at", Value: []byte(m.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
