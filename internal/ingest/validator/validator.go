// Package validator checks add-document requests before they enter the
// ingestion pipeline, returning per-field error details.
package validator

import (
	"fmt"
	"strings"

	"github.com/ase77/searchserver/internal/engine/index"
	"github.com/ase77/searchserver/internal/ingest"
)

const (
	maxTextLength  = 1048576
	maxRatingCount = 1000
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var parts []string
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// ValidateIndexRequest checks the id, text, status, and ratings of an
// add-document request and returns a ValidationError describing every
// violation.
func ValidateIndexRequest(req *ingest.IndexRequest) error {
	errs := make(map[string]string)

	if req.ID < 0 {
		errs["id"] = "id must be non-negative"
	}
	if strings.TrimSpace(req.Text) == "" {
		errs["text"] = "text is required and must not be empty"
	} else if len(req.Text) > maxTextLength {
		errs["text"] = fmt.Sprintf("text must be at most %d bytes", maxTextLength)
	}
	if _, err := index.ParseStatus(req.Status); err != nil {
		errs["status"] = fmt.Sprintf("status must be one of actual, irrelevant, banned, removed; got %q", req.Status)
	}
	if len(req.Ratings) > maxRatingCount {
		errs["ratings"] = fmt.Sprintf("at most %d ratings are accepted", maxRatingCount)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
