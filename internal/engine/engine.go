// Package engine implements the in-memory TF-IDF search engine: document
// indexing, boolean plus/minus queries, relevance ranking, and per-document
// term matching.
//
// The engine itself performs no locking (see the concurrency note on
// Server); a concurrent host wraps it behind its own single-writer lock.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/ase77/searchserver/internal/engine/index"
	"github.com/ase77/searchserver/internal/engine/query"
	"github.com/ase77/searchserver/internal/engine/ranker"
	"github.com/ase77/searchserver/internal/engine/tokenizer"
	apperrors "github.com/ase77/searchserver/pkg/errors"
)

// FilterFunc decides whether a candidate document participates in ranking.
// It receives the document's id, status, and average rating.
type FilterFunc func(id int, status index.Status, rating int) bool

// Server owns the inverted index, the document store, and the stop-word
// set. All methods are synchronous, in-memory computations.
//
// Server is not safe for concurrent use. Callers that mix AddDocument with
// reads from multiple goroutines must serialise access, for example with a
// single-writer/multiple-reader lock.
type Server struct {
	stopWords *tokenizer.StopWordSet
	parser    *query.Parser
	index     *index.InvertedIndex
	docs      *index.DocumentStore
}

// New returns an empty search engine.
func New() *Server {
	stopWords := tokenizer.NewStopWordSet()
	return &Server{
		stopWords: stopWords,
		parser:    query.NewParser(stopWords),
		index:     index.NewInvertedIndex(),
		docs:      index.NewDocumentStore(),
	}
}

// SetStopWords tokenizes text and adds every word to the stop-word set.
// Stop words may be configured before or interleaved with indexing; words
// already indexed are unaffected.
func (s *Server) SetStopWords(text string) {
	s.stopWords.Add(text)
}

// AddDocument indexes a document's text and stores its metadata. A reused
// id is rejected with ErrDuplicateDocument before any state changes, and a
// document whose text is empty after stop-word removal is rejected with
// ErrInvalidDocument.
func (s *Server) AddDocument(id int, text string, status index.Status, ratings []int) error {
	if s.docs.Has(id) {
		return fmt.Errorf("adding document %d: %w", id, apperrors.ErrDuplicateDocument)
	}
	words := s.splitIntoWordsNoStop(text)
	if len(words) == 0 {
		return fmt.Errorf("adding document %d: %w", id, apperrors.ErrInvalidDocument)
	}
	// Each occurrence contributes 1/|words|, so the term frequencies of a
	// document's distinct words sum to 1.
	invWordCount := 1.0 / float64(len(words))
	for _, word := range words {
		s.index.Accumulate(word, id, invWordCount)
	}
	s.docs.Put(index.DocumentRecord{
		ID:     id,
		Rating: averageRating(ratings),
		Status: status,
	})
	return nil
}

// GetDocumentCount returns the number of indexed documents.
func (s *Server) GetDocumentCount() int {
	return s.docs.Count()
}

// FindTopDocuments ranks documents with status Actual against rawQuery.
func (s *Server) FindTopDocuments(rawQuery string) ([]ranker.Document, error) {
	return s.FindTopDocumentsWithStatus(rawQuery, index.StatusActual)
}

// FindTopDocumentsWithStatus ranks documents whose status equals status.
func (s *Server) FindTopDocumentsWithStatus(rawQuery string, status index.Status) ([]ranker.Document, error) {
	return s.FindTopDocumentsFunc(rawQuery, func(_ int, docStatus index.Status, _ int) bool {
		return docStatus == status
	})
}

// FindTopDocumentsFunc is the generic ranking entry point: it parses
// rawQuery, scores every candidate accepted by filter, and returns at most
// ranker.MaxResultCount results ordered by relevance.
func (s *Server) FindTopDocumentsFunc(rawQuery string, filter FilterFunc) ([]ranker.Document, error) {
	q, err := s.parser.Parse(rawQuery)
	if err != nil {
		return nil, err
	}
	return ranker.SelectTop(s.findAllDocuments(q, filter)), nil
}

// MatchDocument returns the query's plus words that occur in the given
// document, sorted ascending, together with the document's status. If any
// minus word occurs in the document the word list is empty. An id that was
// never added fails with ErrDocumentNotFound.
func (s *Server) MatchDocument(rawQuery string, docID int) ([]string, index.Status, error) {
	rec, ok := s.docs.Get(docID)
	if !ok {
		return nil, 0, fmt.Errorf("matching document %d: %w", docID, apperrors.ErrDocumentNotFound)
	}
	q, err := s.parser.Parse(rawQuery)
	if err != nil {
		return nil, 0, err
	}
	matched := make([]string, 0, len(q.PlusWords))
	for word := range q.PlusWords {
		if s.index.HasPosting(word, docID) {
			matched = append(matched, word)
		}
	}
	for word := range q.MinusWords {
		if s.index.HasPosting(word, docID) {
			matched = matched[:0]
			break
		}
	}
	sort.Strings(matched)
	return matched, rec.Status, nil
}

// findAllDocuments accumulates tf*idf relevance for every document matching
// a plus word and accepted by filter, then removes every document matching
// a minus word. Minus-word removal is unconditional and ignores the filter.
func (s *Server) findAllDocuments(q query.Query, filter FilterFunc) []ranker.Document {
	relevance := make(map[int]float64)
	for word := range q.PlusWords {
		if !s.index.HasWord(word) {
			continue
		}
		idf := s.wordInverseDocumentFreq(word)
		for docID, tf := range s.index.Postings(word) {
			rec, _ := s.docs.Get(docID)
			if filter(docID, rec.Status, rec.Rating) {
				relevance[docID] += tf * idf
			}
		}
	}
	for word := range q.MinusWords {
		if !s.index.HasWord(word) {
			continue
		}
		for docID := range s.index.Postings(word) {
			delete(relevance, docID)
		}
	}

	matched := make([]ranker.Document, 0, len(relevance))
	for docID, rel := range relevance {
		rec, _ := s.docs.Get(docID)
		matched = append(matched, ranker.Document{
			ID:        docID,
			Relevance: rel,
			Rating:    rec.Rating,
		})
	}
	return matched
}

// wordInverseDocumentFreq computes ln(total documents / documents
// containing word). Only called for words present in the index.
func (s *Server) wordInverseDocumentFreq(word string) float64 {
	return math.Log(float64(s.docs.Count()) / float64(s.index.DocFreq(word)))
}

func (s *Server) splitIntoWordsNoStop(text string) []string {
	words := make([]string, 0)
	for _, word := range tokenizer.SplitIntoWords(text) {
		if !s.stopWords.Contains(word) {
			words = append(words, word)
		}
	}
	return words
}

// averageRating is the truncated (toward zero) integer mean of ratings,
// 0 when there are none.
func averageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
