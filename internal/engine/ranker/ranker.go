// Package ranker orders scored documents and truncates them to the result
// page size.
package ranker

import (
	"math"
	"sort"
)

// MaxResultCount is the number of documents returned per query.
const MaxResultCount = 5

// relevanceEpsilon guards against floating-point noise when comparing
// relevance values. Kept as a fixed absolute epsilon so ranking order is
// reproducible.
const relevanceEpsilon = 1e-6

// Document is one ranked search result.
type Document struct {
	ID        int     `json:"document_id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

// SelectTop sorts docs by relevance descending, breaking near-ties (within
// relevanceEpsilon) by rating descending, and truncates to MaxResultCount.
// The slice is sorted in place and the returned slice aliases it.
func SelectTop(docs []Document) []Document {
	sort.Slice(docs, func(i, j int) bool {
		if math.Abs(docs[i].Relevance-docs[j].Relevance) < relevanceEpsilon {
			return docs[i].Rating > docs[j].Rating
		}
		return docs[i].Relevance > docs[j].Relevance
	})
	if len(docs) > MaxResultCount {
		docs = docs[:MaxResultCount]
	}
	return docs
}
