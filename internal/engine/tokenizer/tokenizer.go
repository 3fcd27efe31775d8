// Package tokenizer splits raw document and query text into words and
// maintains the stop-word set shared by the indexing and query paths.
// Splitting is deliberately minimal: words are runs of non-space characters,
// case is preserved, and no stemming or normalisation is applied.
package tokenizer

import "strings"

// SplitIntoWords breaks text into words on space characters. Runs of spaces
// collapse and never produce empty words; empty input yields an empty slice.
func SplitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' '
	})
}

// StopWordSet is a union-only set of words that are excluded from both
// indexing and parsed queries. There is no removal operation.
type StopWordSet struct {
	words map[string]struct{}
}

// NewStopWordSet returns an empty stop-word set.
func NewStopWordSet() *StopWordSet {
	return &StopWordSet{
		words: make(map[string]struct{}),
	}
}

// Add tokenizes text and unions every resulting word into the set. Adding
// the same word twice is a no-op.
func (s *StopWordSet) Add(text string) {
	for _, word := range SplitIntoWords(text) {
		s.words[word] = struct{}{}
	}
}

// Contains reports whether word is a stop word.
func (s *StopWordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct stop words.
func (s *StopWordSet) Len() int {
	return len(s.words)
}
