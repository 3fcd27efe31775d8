// Package history persists executed searches to PostgreSQL for later
// inspection. Writes are best-effort: a failed insert never fails the
// search that produced it.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ase77/searchserver/pkg/postgres"
	"github.com/ase77/searchserver/pkg/resilience"
)

// SearchRecord is one executed search.
type SearchRecord struct {
	Query      string    `json:"query"`
	Status     string    `json:"status"`
	Hits       int       `json:"hits"`
	LatencyMs  int64     `json:"latency_ms"`
	ExecutedAt time.Time `json:"executed_at"`
}

// Store persists search records.
//
// It requires a `search_history` table:
//
//	CREATE TABLE search_history (
//	    id          BIGSERIAL PRIMARY KEY,
//	    query       TEXT NOT NULL,
//	    status      TEXT NOT NULL,
//	    hits        INT NOT NULL,
//	    latency_ms  BIGINT NOT NULL,
//	    executed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type Store struct {
	db     *postgres.Client
	logger *slog.Logger
}

// NewStore creates a search-history store.
func NewStore(db *postgres.Client) *Store {
	return &Store{
		db:     db,
		logger: slog.Default().With("component", "history-store"),
	}
}

// Record inserts one search record, retrying transient failures.
func (s *Store) Record(ctx context.Context, rec SearchRecord) error {
	err := resilience.Retry(ctx, "history-insert", resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     time.Second,
	}, func() error {
		_, err := s.db.DB.ExecContext(ctx,
			`INSERT INTO search_history (query, status, hits, latency_ms, executed_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.Query, rec.Status, rec.Hits, rec.LatencyMs, rec.ExecutedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the last limit searches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]SearchRecord, error) {
	rows, err := s.db.DB.QueryContext(ctx,
		`SELECT query, status, hits, latency_ms, executed_at
		 FROM search_history ORDER BY executed_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing search history: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var rec SearchRecord
		if err := rows.Scan(&rec.Query, &rec.Status, &rec.Hits, &rec.LatencyMs, &rec.ExecutedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
