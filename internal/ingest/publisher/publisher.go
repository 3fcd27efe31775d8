// Package publisher writes accepted documents to the Kafka indexing topic.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ase77/searchserver/internal/ingest"
	"github.com/ase77/searchserver/pkg/kafka"
)

// Publisher wraps a Kafka producer for the document-index topic.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

func New(producer *kafka.Producer) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   slog.Default().With("component", "ingest-publisher"),
	}
}

// Publish wraps req in an IndexEvent and writes it to Kafka, keyed by the
// document id so retries of the same document land on one partition.
func (p *Publisher) Publish(ctx context.Context, req ingest.IndexRequest) error {
	event := ingest.IndexEvent{
		Document:   req,
		AcceptedAt: time.Now().UTC(),
	}
	if err := p.producer.Publish(ctx, kafka.Event{
		Key:   strconv.Itoa(req.ID),
		Value: event,
	}); err != nil {
		return fmt.Errorf("publishing index event for document %d: %w", req.ID, err)
	}
	p.logger.Debug("index event published", "doc_id", req.ID)
	return nil
}
