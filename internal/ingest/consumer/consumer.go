// Package consumer drives the indexing side of the ingestion pipeline: it
// decodes IndexEvents from Kafka and feeds them to the search service.
package consumer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ase77/searchserver/internal/ingest"
	"github.com/ase77/searchserver/pkg/config"
	apperrors "github.com/ase77/searchserver/pkg/errors"
	"github.com/ase77/searchserver/pkg/kafka"
)

// Indexer indexes one document. Implemented by the search service.
type Indexer interface {
	Index(ctx context.Context, req ingest.IndexRequest) error
}

// New builds a Kafka consumer whose handler indexes every received
// document. Documents rejected by the engine (duplicate id, no indexable
// words) are logged and skipped so the partition keeps moving; they are
// permanent failures a retry cannot fix.
func New(cfg config.KafkaConfig, topic string, indexer Indexer) *kafka.Consumer {
	logger := slog.Default().With("component", "ingest-consumer")
	handler := func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[ingest.IndexEvent](value)
		if err != nil {
			logger.Error("dropping undecodable index event", "key", string(key), "error", err)
			return nil
		}
		if err := indexer.Index(ctx, event.Document); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateDocument) || errors.Is(err, apperrors.ErrInvalidDocument) || errors.Is(err, apperrors.ErrInvalidInput) {
				logger.Warn("dropping rejected document", "doc_id", event.Document.ID, "error", err)
				return nil
			}
			return err
		}
		return nil
	}
	return kafka.NewConsumer(cfg, topic, handler)
}
