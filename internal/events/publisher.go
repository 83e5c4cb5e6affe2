// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	"github.com/aaravmahajanofficial/swag-catalog/internal/config"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/quotation"
)

// ProducerConfig is the sarama setup for a synchronous producer.
func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	return cfg
}

func NewSyncProducer(cfg *config.Kafka) (sarama.SyncProducer, error) {
	p, err := sarama.NewSyncProducer(cfg.Brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return p, nil
}

// QuotationPublisher emits a QuotationRequestedEvent per issued quotation,
// keyed by quotation number.
type QuotationPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewQuotationPublisher(producer sarama.SyncProducer, topic string) *QuotationPublisher {
	return &QuotationPublisher{producer: producer, topic: topic}
}

func (p *QuotationPublisher) Name() string {
	return "events"
}

func (p *QuotationPublisher) Export(ctx context.Context, q models.Quotation, sessionID string) error {
	logger := middleware.LoggerFromContext(ctx)

	value, err := json.Marshal(quotation.Event(q, sessionID))
	if err != nil {
		return fmt.Errorf("failed to encode quotation event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(q.Number.String()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to publish quotation event: %w", err)
	}

	logger.Info("Quotation event published",
		slog.String("topic", p.topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
		slog.String("number", q.Number.String()),
	)

	return nil
}

func (p *QuotationPublisher) Close() error {
	return p.producer.Close()
}
