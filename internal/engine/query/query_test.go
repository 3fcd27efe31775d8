package query

import (
	"errors"
	"testing"

	"github.com/ase77/searchserver/internal/engine/tokenizer"
	apperrors "github.com/ase77/searchserver/pkg/errors"
)

func newParser(stopWords string) *Parser {
	s := tokenizer.NewStopWordSet()
	s.Add(stopWords)
	return NewParser(s)
}

func TestParsePlusAndMinusWords(t *testing.T) {
	p := newParser("и в")

	q, err := p.Parse("пушистый ухоженный кот -лапа")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, word := range []string{"пушистый", "ухоженный", "кот"} {
		if _, ok := q.PlusWords[word]; !ok {
			t.Errorf("expected plus word %q", word)
		}
	}
	if len(q.PlusWords) != 3 {
		t.Errorf("got %d plus words, want 3", len(q.PlusWords))
	}
	if _, ok := q.MinusWords["лапа"]; !ok {
		t.Error("expected minus word лапа")
	}
	if len(q.MinusWords) != 1 {
		t.Errorf("got %d minus words, want 1", len(q.MinusWords))
	}
}

func TestParseDuplicatesCollapse(t *testing.T) {
	p := newParser("")
	q, err := p.Parse("кот кот -пёс -пёс")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(q.PlusWords) != 1 || len(q.MinusWords) != 1 {
		t.Errorf("duplicates did not collapse: %d plus, %d minus", len(q.PlusWords), len(q.MinusWords))
	}
}

func TestParseDiscardsStopWords(t *testing.T) {
	p := newParser("и в")
	q, err := p.Parse("кот и -в")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := q.PlusWords["и"]; ok {
		t.Error("stop word parsed as plus word")
	}
	// A minus-prefixed stop word is discarded entirely, not kept as a
	// minus word.
	if _, ok := q.MinusWords["в"]; ok {
		t.Error("stop word parsed as minus word")
	}
	if len(q.PlusWords) != 1 {
		t.Errorf("got %d plus words, want 1", len(q.PlusWords))
	}
}

func TestParseRejectsMalformedMinusWords(t *testing.T) {
	p := newParser("")
	for _, raw := range []string{"-", "кот -", "--кот", "кот --пёс"} {
		if _, err := p.Parse(raw); !errors.Is(err, apperrors.ErrInvalidQuery) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidQuery", raw, err)
		}
	}
}

func TestParseEmptyQuery(t *testing.T) {
	p := newParser("и")
	for _, raw := range []string{"", "   ", "и и"} {
		q, err := p.Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if len(q.PlusWords) != 0 || len(q.MinusWords) != 0 {
			t.Errorf("Parse(%q) produced non-empty query: %+v", raw, q)
		}
	}
}
