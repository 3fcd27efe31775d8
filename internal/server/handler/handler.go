// Package handler exposes the search service over a JSON HTTP API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ase77/searchserver/internal/engine/index"
	"github.com/ase77/searchserver/internal/history"
	"github.com/ase77/searchserver/internal/ingest"
	"github.com/ase77/searchserver/internal/ingest/validator"
	"github.com/ase77/searchserver/internal/server"
	apperrors "github.com/ase77/searchserver/pkg/errors"
	"github.com/ase77/searchserver/pkg/logger"
)

// Service is the search surface the handler needs. Implemented by
// server.SearchService.
type Service interface {
	Search(ctx context.Context, rawQuery string, status index.Status) (*server.SearchResult, error)
	Match(ctx context.Context, rawQuery string, docID int) ([]string, index.Status, error)
	DocumentCount() int
	CacheStats() (hits, misses int64, enabled bool)
	InvalidateCache(ctx context.Context) error
	RecentSearches(ctx context.Context, limit int) ([]history.SearchRecord, error)
}

// Publisher accepts a validated document for asynchronous indexing.
type Publisher interface {
	Publish(ctx context.Context, req ingest.IndexRequest) error
}

type Handler struct {
	service      Service
	publisher    Publisher
	historyLimit int
	logger       *slog.Logger
}

func New(service Service, publisher Publisher, historyLimit int) *Handler {
	return &Handler{
		service:      service,
		publisher:    publisher,
		historyLimit: historyLimit,
		logger:       slog.Default().With("component", "http-handler"),
	}
}

// Register attaches all API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/documents", h.AddDocument)
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/documents/{id}/match", h.Match)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("GET /api/v1/history", h.History)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
}

// AddDocument validates the request body and hands it to the ingestion
// pipeline. Indexing is asynchronous, so a 202 only means "accepted".
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req ingest.IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validator.ValidateIndexRequest(&req); err != nil {
		var validationErr *validator.ValidationError
		if errors.As(err, &validationErr) {
			h.writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": validationErr.Fields,
			})
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.publisher.Publish(ctx, req); err != nil {
		statusCode := apperrors.HTTPStatusCode(err)
		log.Error("publishing document failed", "doc_id", req.ID, "status_code", statusCode, "error", err)
		h.writeError(w, statusCode, "failed to accept document")
		return
	}
	log.Info("document accepted", "doc_id", req.ID)
	h.writeJSON(w, http.StatusAccepted, ingest.IndexResponse{
		DocumentID: req.ID,
		Status:     "accepted",
	})
}

// Search answers ranked keyword queries. The status filter defaults to
// "actual" when absent.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	status := index.StatusActual
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		parsed, err := index.ParseStatus(statusParam)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(statusParam))
			return
		}
		status = parsed
	}

	result, err := h.service.Search(ctx, query, status)
	if err != nil {
		statusCode := apperrors.HTTPStatusCode(err)
		log.Error("search failed", "query", query, "status_code", statusCode, "error", err)
		h.writeError(w, statusCode, err.Error())
		return
	}
	log.Info("search completed",
		"query", query,
		"status", result.Status,
		"returned", len(result.Results),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, result)
}

// Match reports which query words occur in one document.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	docID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "document id must be an integer")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	words, status, err := h.service.Match(ctx, query, docID)
	if err != nil {
		statusCode := apperrors.HTTPStatusCode(err)
		log.Error("match failed", "doc_id", docID, "status_code", statusCode, "error", err)
		h.writeError(w, statusCode, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"document_id":   docID,
		"status":        status.String(),
		"matched_words": words,
	})
}

// Stats reports the document count and cache counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	hits, misses, enabled := h.service.CacheStats()
	stats := map[string]any{
		"document_count": h.service.DocumentCount(),
		"cache": map[string]any{
			"enabled": enabled,
			"hits":    hits,
			"misses":  misses,
		},
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// History lists recently executed searches.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := h.historyLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}
	records, err := h.service.RecentSearches(r.Context(), limit)
	if err != nil {
		h.logger.Error("listing search history failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list search history")
		return
	}
	if records == nil {
		records = []history.SearchRecord{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"searches": records})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.InvalidateCache(r.Context()); err != nil {
		statusCode := apperrors.HTTPStatusCode(err)
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, statusCode, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
