// Package index holds the in-memory inverted index and the per-document
// metadata store that back the search engine. Both structures grow without
// bound and are never compacted: documents are added once and never removed.
//
// Neither type locks internally. The engine owning them is single-writer by
// contract and a concurrent host must serialise access itself.
package index

import (
	"fmt"

	apperrors "github.com/ase77/searchserver/pkg/errors"
)

// Status classifies a document's lifecycle state for filtering.
type Status int

const (
	StatusActual Status = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

var statusNames = map[Status]string{
	StatusActual:     "actual",
	StatusIrrelevant: "irrelevant",
	StatusBanned:     "banned",
	StatusRemoved:    "removed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ParseStatus converts the wire form of a status back to its enum value.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("parsing status %q: %w", name, apperrors.ErrInvalidInput)
}

// DocumentRecord is the stored metadata for one document. Records are
// immutable once put into the store.
type DocumentRecord struct {
	ID     int
	Rating int
	Status Status
}

// DocumentStore maps document ids to their records.
type DocumentStore struct {
	docs map[int]DocumentRecord
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[int]DocumentRecord),
	}
}

// Put stores a record. The caller guarantees the id is not already present;
// the engine rejects duplicates before reaching the store.
func (d *DocumentStore) Put(rec DocumentRecord) {
	d.docs[rec.ID] = rec
}

func (d *DocumentStore) Get(id int) (DocumentRecord, bool) {
	rec, ok := d.docs[id]
	return rec, ok
}

func (d *DocumentStore) Has(id int) bool {
	_, ok := d.docs[id]
	return ok
}

// Count returns the number of stored documents. This is also the corpus
// size used for inverse document frequency.
func (d *DocumentStore) Count() int {
	return len(d.docs)
}

// InvertedIndex maps each indexed word to the documents containing it and
// each document's term frequency for that word.
type InvertedIndex struct {
	postings map[string]map[int]float64
}

func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		postings: make(map[string]map[int]float64),
	}
}

// Accumulate adds tf to the posting for (word, docID), creating it if
// absent. Repeated occurrences of a word within one document accumulate
// additively.
func (i *InvertedIndex) Accumulate(word string, docID int, tf float64) {
	docs, ok := i.postings[word]
	if !ok {
		docs = make(map[int]float64)
		i.postings[word] = docs
	}
	docs[docID] += tf
}

// Postings returns the docID → term frequency map for word, or nil if the
// word is not indexed. The returned map is the index's own storage and must
// not be modified.
func (i *InvertedIndex) Postings(word string) map[int]float64 {
	return i.postings[word]
}

func (i *InvertedIndex) HasWord(word string) bool {
	_, ok := i.postings[word]
	return ok
}

func (i *InvertedIndex) HasPosting(word string, docID int) bool {
	_, ok := i.postings[word][docID]
	return ok
}

// DocFreq returns the number of documents containing word.
func (i *InvertedIndex) DocFreq(word string) int {
	return len(i.postings[word])
}

// WordCount returns the number of distinct indexed words.
func (i *InvertedIndex) WordCount() int {
	return len(i.postings)
}
