package tokenizer

import (
	"reflect"
	"testing"
)

func TestSplitIntoWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "only spaces", text: "   ", want: []string{}},
		{name: "single word", text: "cat", want: []string{"cat"}},
		{name: "simple", text: "white cat collar", want: []string{"white", "cat", "collar"}},
		{name: "collapses space runs", text: "white   cat", want: []string{"white", "cat"}},
		{name: "trims leading and trailing", text: "  white cat  ", want: []string{"white", "cat"}},
		{name: "case preserved", text: "Cat CAT cat", want: []string{"Cat", "CAT", "cat"}},
		{name: "non-space whitespace is not a separator", text: "white\tcat", want: []string{"white\tcat"}},
		{name: "cyrillic", text: "пушистый кот", want: []string{"пушистый", "кот"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitIntoWords(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitIntoWords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStopWordSet(t *testing.T) {
	s := NewStopWordSet()
	if s.Contains("и") {
		t.Error("empty set should contain nothing")
	}

	s.Add("и в на")
	for _, word := range []string{"и", "в", "на"} {
		if !s.Contains(word) {
			t.Errorf("expected %q to be a stop word", word)
		}
	}
	if s.Contains("кот") {
		t.Error("non-stop word reported as stop word")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	// Union is idempotent and incremental.
	s.Add("и the")
	if s.Len() != 4 {
		t.Errorf("Len() after re-add = %d, want 4", s.Len())
	}
	if !s.Contains("the") {
		t.Error("expected later addition to be present")
	}
}
