package index

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/ase77/searchserver/pkg/errors"
)

func TestInvertedIndexAccumulate(t *testing.T) {
	idx := NewInvertedIndex()

	if idx.HasWord("cat") {
		t.Error("empty index should contain no words")
	}
	if idx.DocFreq("cat") != 0 {
		t.Error("DocFreq of unknown word should be 0")
	}

	// Two occurrences of "cat" in a four-word document.
	idx.Accumulate("cat", 1, 0.25)
	idx.Accumulate("cat", 1, 0.25)
	idx.Accumulate("cat", 2, 0.5)
	idx.Accumulate("dog", 2, 0.5)

	if !idx.HasWord("cat") || !idx.HasWord("dog") {
		t.Fatal("expected indexed words to be present")
	}
	if got := idx.DocFreq("cat"); got != 2 {
		t.Errorf("DocFreq(cat) = %d, want 2", got)
	}
	if got := idx.Postings("cat")[1]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("tf(cat, 1) = %v, want 0.5 (accumulated additively)", got)
	}
	if !idx.HasPosting("cat", 2) {
		t.Error("expected posting (cat, 2)")
	}
	if idx.HasPosting("dog", 1) {
		t.Error("unexpected posting (dog, 1)")
	}
	if got := idx.WordCount(); got != 2 {
		t.Errorf("WordCount() = %d, want 2", got)
	}
}

func TestDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	if store.Count() != 0 {
		t.Error("new store should be empty")
	}

	store.Put(DocumentRecord{ID: 7, Rating: 3, Status: StatusBanned})
	rec, ok := store.Get(7)
	if !ok {
		t.Fatal("expected record for id 7")
	}
	if rec.Rating != 3 || rec.Status != StatusBanned {
		t.Errorf("got %+v, want rating 3 status banned", rec)
	}
	if !store.Has(7) || store.Has(8) {
		t.Error("Has reported wrong membership")
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusActual, StatusIrrelevant, StatusBanned, StatusRemoved} {
		parsed, err := ParseStatus(status.String())
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", status.String(), err)
		}
		if parsed != status {
			t.Errorf("round trip of %v gave %v", status, parsed)
		}
	}

	if _, err := ParseStatus("bogus"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("ParseStatus(bogus) error = %v, want ErrInvalidInput", err)
	}
}
