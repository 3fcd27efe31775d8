// Package server hosts the search engine behind a single-writer lock and
// wires it to the query cache, metrics, and search history. The engine
// itself does no locking; this layer serialises AddDocument against
// concurrent reads.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ase77/searchserver/internal/engine"
	"github.com/ase77/searchserver/internal/engine/index"
	"github.com/ase77/searchserver/internal/engine/ranker"
	"github.com/ase77/searchserver/internal/history"
	"github.com/ase77/searchserver/internal/ingest"
	"github.com/ase77/searchserver/internal/server/cache"
	apperrors "github.com/ase77/searchserver/pkg/errors"
	"github.com/ase77/searchserver/pkg/metrics"
)

// SearchResult is the JSON shape returned by the search endpoint.
type SearchResult struct {
	Query   string            `json:"query"`
	Status  string            `json:"status"`
	Results []ranker.Document `json:"results"`
}

// SearchService owns the engine and its supporting infrastructure. The
// cache, history store, and metrics may each be nil, which disables them.
type SearchService struct {
	mu      sync.RWMutex
	engine  *engine.Server
	cache   *cache.QueryCache
	history *history.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(eng *engine.Server, queryCache *cache.QueryCache, hist *history.Store, m *metrics.Metrics) *SearchService {
	return &SearchService{
		engine:  eng,
		cache:   queryCache,
		history: hist,
		metrics: m,
		logger:  slog.Default().With("component", "search-service"),
	}
}

// Index adds one document to the engine and invalidates the query cache.
// Rejections (duplicate id, no indexable words, unknown status) come back
// as typed errors and leave the engine untouched.
func (s *SearchService) Index(ctx context.Context, req ingest.IndexRequest) error {
	status, err := index.ParseStatus(req.Status)
	if err != nil {
		s.countIndexError("invalid")
		return err
	}

	s.mu.Lock()
	err = s.engine.AddDocument(req.ID, req.Text, status, req.Ratings)
	docCount := s.engine.GetDocumentCount()
	s.mu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateDocument):
			s.countIndexError("duplicate")
		case errors.Is(err, apperrors.ErrInvalidDocument):
			s.countIndexError("invalid")
		}
		return err
	}

	if s.metrics != nil {
		s.metrics.DocsIndexedTotal.Inc()
		s.metrics.DocumentCount.Set(float64(docCount))
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Error("cache invalidation after index failed", "doc_id", req.ID, "error", err)
		}
	}
	s.logger.Info("document indexed", "doc_id", req.ID, "status", req.Status, "document_count", docCount)
	return nil
}

// Search ranks documents with the given status against rawQuery, consulting
// the query cache first. Each executed search is recorded to the history
// store asynchronously.
func (s *SearchService) Search(ctx context.Context, rawQuery string, status index.Status) (*SearchResult, error) {
	start := time.Now()

	compute := func() ([]ranker.Document, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.engine.FindTopDocumentsWithStatus(rawQuery, status)
	}

	var results []ranker.Document
	var err error
	cacheHit := false
	if s.cache != nil {
		results, cacheHit, err = s.cache.GetOrCompute(ctx, rawQuery, status.String(), compute)
	} else {
		results, err = compute()
	}

	latency := time.Since(start)
	if err != nil {
		s.observeSearch("error", cacheHit, latency, 0)
		return nil, err
	}

	resultType := "hit"
	if len(results) == 0 {
		resultType = "zero_result"
	}
	s.observeSearch(resultType, cacheHit, latency, len(results))
	s.recordHistory(rawQuery, status.String(), len(results), latency)

	if results == nil {
		results = []ranker.Document{}
	}
	return &SearchResult{
		Query:   rawQuery,
		Status:  status.String(),
		Results: results,
	}, nil
}

// Match reports which of rawQuery's plus words occur in the given document.
func (s *SearchService) Match(ctx context.Context, rawQuery string, docID int) ([]string, index.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.MatchDocument(rawQuery, docID)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.GetDocumentCount()
}

// CacheStats returns the query cache hit/miss counters; enabled is false
// when no cache is configured.
func (s *SearchService) CacheStats() (hits, misses int64, enabled bool) {
	if s.cache == nil {
		return 0, 0, false
	}
	hits, misses = s.cache.Stats()
	return hits, misses, true
}

// InvalidateCache drops every cached query result.
func (s *SearchService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return apperrors.New(apperrors.ErrInvalidInput, http.StatusServiceUnavailable, "caching is disabled")
	}
	return s.cache.Invalidate(ctx)
}

// RecentSearches lists the most recent executed searches, newest first.
func (s *SearchService) RecentSearches(ctx context.Context, limit int) ([]history.SearchRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, limit)
}

func (s *SearchService) observeSearch(resultType string, cacheHit bool, latency time.Duration, resultCount int) {
	if s.metrics == nil {
		return
	}
	s.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	cacheStatus := "miss"
	if s.cache == nil {
		cacheStatus = "disabled"
	} else if cacheHit {
		cacheStatus = "hit"
	}
	s.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
	if resultType != "error" {
		s.metrics.SearchResultsCount.Observe(float64(resultCount))
	}
	if cacheHit {
		s.metrics.CacheHitsTotal.Inc()
	} else if s.cache != nil {
		s.metrics.CacheMissesTotal.Inc()
	}
}

func (s *SearchService) recordHistory(query string, status string, hits int, latency time.Duration) {
	if s.history == nil {
		return
	}
	rec := history.SearchRecord{
		Query:      query,
		Status:     status,
		Hits:       hits,
		LatencyMs:  latency.Milliseconds(),
		ExecutedAt: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.history.Record(ctx, rec); err != nil {
			s.logger.Error("recording search history failed", "query", query, "error", err)
		}
	}()
}

func (s *SearchService) countIndexError(reason string) {
	if s.metrics != nil {
		s.metrics.IndexErrorsTotal.WithLabelValues(reason).Inc()
	}
}
