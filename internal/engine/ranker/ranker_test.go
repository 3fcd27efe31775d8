package ranker

import "testing"

func TestSelectTopOrdersByRelevance(t *testing.T) {
	docs := []Document{
		{ID: 1, Relevance: 0.1, Rating: 9},
		{ID: 2, Relevance: 0.7, Rating: 0},
		{ID: 3, Relevance: 0.4, Rating: 5},
	}
	got := SelectTop(docs)
	wantOrder := []int{2, 3, 1}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got id %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestSelectTopBreaksNearTiesByRating(t *testing.T) {
	// Relevance differs by less than the epsilon, so rating decides.
	docs := []Document{
		{ID: 1, Relevance: 0.5, Rating: 2},
		{ID: 2, Relevance: 0.5 + 5e-7, Rating: 8},
		{ID: 3, Relevance: 0.5 - 5e-7, Rating: 5},
	}
	got := SelectTop(docs)
	wantOrder := []int{2, 3, 1}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got id %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestSelectTopRelevanceBeatsRatingOutsideEpsilon(t *testing.T) {
	docs := []Document{
		{ID: 1, Relevance: 0.5, Rating: 100},
		{ID: 2, Relevance: 0.5001, Rating: -100},
	}
	got := SelectTop(docs)
	if got[0].ID != 2 {
		t.Errorf("got id %d first, want 2 (higher relevance wins beyond epsilon)", got[0].ID)
	}
}

func TestSelectTopTruncates(t *testing.T) {
	docs := make([]Document, 0, 8)
	for i := 0; i < 8; i++ {
		docs = append(docs, Document{ID: i, Relevance: float64(i), Rating: 0})
	}
	got := SelectTop(docs)
	if len(got) != MaxResultCount {
		t.Fatalf("got %d results, want %d", len(got), MaxResultCount)
	}
	if got[0].ID != 7 {
		t.Errorf("truncation kept the wrong end: first id %d, want 7", got[0].ID)
	}
}

func TestSelectTopEmpty(t *testing.T) {
	if got := SelectTop(nil); len(got) != 0 {
		t.Errorf("SelectTop(nil) = %v, want empty", got)
	}
}
