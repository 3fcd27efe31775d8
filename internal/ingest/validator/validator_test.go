package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/ase77/searchserver/internal/ingest"
)

func TestValidateIndexRequestAccepts(t *testing.T) {
	req := &ingest.IndexRequest{
		ID:      0,
		Text:    "белый кот и модный ошейник",
		Status:  "actual",
		Ratings: []int{8, -3},
	}
	if err := ValidateIndexRequest(req); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
}

func TestValidateIndexRequestRejects(t *testing.T) {
	tests := []struct {
		name      string
		req       ingest.IndexRequest
		wantField string
	}{
		{
			name:      "negative id",
			req:       ingest.IndexRequest{ID: -1, Text: "кот", Status: "actual"},
			wantField: "id",
		},
		{
			name:      "empty text",
			req:       ingest.IndexRequest{ID: 1, Text: "   ", Status: "actual"},
			wantField: "text",
		},
		{
			name:      "oversized text",
			req:       ingest.IndexRequest{ID: 1, Text: strings.Repeat("a", maxTextLength+1), Status: "actual"},
			wantField: "text",
		},
		{
			name:      "unknown status",
			req:       ingest.IndexRequest{ID: 1, Text: "кот", Status: "archived"},
			wantField: "status",
		},
		{
			name:      "too many ratings",
			req:       ingest.IndexRequest{ID: 1, Text: "кот", Status: "actual", Ratings: make([]int, maxRatingCount+1)},
			wantField: "ratings",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndexRequest(&tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("error type %T, want *ValidationError", err)
			}
			if _, ok := validationErr.Fields[tt.wantField]; !ok {
				t.Errorf("expected failure for field %q, got %v", tt.wantField, validationErr.Fields)
			}
		})
	}
}
