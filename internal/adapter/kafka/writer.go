package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-risk-report/internal/config"
	"github.com/couchcryptid/quake-risk-report/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces risk assessments to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured assessment topic.
func NewWriter(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, clock: clock, logger: logger}
}

// Publish serializes and writes all assessments in a single WriteMessages
// call. Messages are keyed by state and building so repeated runs for the
// same location land on the same partition.
func (w *Writer) Publish(ctx context.Context, assessments []domain.RiskAssessment) error {
	if len(assessments) == 0 {
		return nil
	}
	assessedAt := w.clock.Now().UTC()
	msgs := make([]kafkago.Message, len(assessments))
	for i := range assessments {
		msg, err := serializeToMessage(assessments[i], assessedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish assessments: %w", err)
	}
	w.logger.Info("assessments published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// assessmentMessage is the JSON value written for each assessment.
type assessmentMessage struct {
	domain.RiskAssessment
	AssessedAt time.Time `json:"assessed_at"`
}

// serializeToMessage marshals a RiskAssessment into a Kafka message.
func serializeToMessage(a domain.RiskAssessment, assessedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(assessmentMessage{RiskAssessment: a, AssessedAt: assessedAt})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize risk assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(messageKey(a.Location)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk", Value: []byte(a.Risk)},
			{Key: "assessed_at", Value: []byte(assessedAt.Format(time.RFC3339))},
		},
	}, nil
}

func messageKey(loc domain.ClientLocation) string {
	return loc.State + "|" + loc.Building
}
