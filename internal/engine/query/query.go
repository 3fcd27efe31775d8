// Package query parses raw query strings into plus/minus word sets.
package query

import (
	"fmt"
	"strings"

	"github.com/ase77/searchserver/internal/engine/tokenizer"
	apperrors "github.com/ase77/searchserver/pkg/errors"
)

// Query is a parsed search query. PlusWords must be present in a matching
// document; any MinusWords present disqualify it. Both are sets, so
// duplicate words in the raw query collapse.
type Query struct {
	PlusWords  map[string]struct{}
	MinusWords map[string]struct{}
}

// Parser turns raw query strings into Queries, discarding stop words.
type Parser struct {
	stopWords *tokenizer.StopWordSet
}

func NewParser(stopWords *tokenizer.StopWordSet) *Parser {
	return &Parser{stopWords: stopWords}
}

// Parse splits rawQuery into words and classifies each as a plus or minus
// word. A leading '-' marks a minus word and is stripped. A bare "-" or a
// word starting with "--" is rejected as malformed. Stop words are dropped
// from both sets.
func (p *Parser) Parse(rawQuery string) (Query, error) {
	q := Query{
		PlusWords:  make(map[string]struct{}),
		MinusWords: make(map[string]struct{}),
	}
	for _, word := range tokenizer.SplitIntoWords(rawQuery) {
		if strings.HasPrefix(word, "-") {
			minus := word[1:]
			if minus == "" || strings.HasPrefix(minus, "-") {
				return Query{}, fmt.Errorf("parsing query word %q: %w", word, apperrors.ErrInvalidQuery)
			}
			if p.stopWords.Contains(minus) {
				continue
			}
			q.MinusWords[minus] = struct{}{}
			continue
		}
		if p.stopWords.Contains(word) {
			continue
		}
		q.PlusWords[word] = struct{}{}
	}
	return q, nil
}
