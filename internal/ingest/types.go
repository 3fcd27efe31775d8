// Package ingest defines the request types and Kafka event schema used by
// the document ingestion pipeline.
package ingest

import "time"

// IndexRequest is the JSON body accepted by the add-document HTTP endpoint
// and, wrapped in an IndexEvent, the Kafka payload consumed by the indexing
// loop.
type IndexRequest struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Status  string `json:"status"`
	Ratings []int  `json:"ratings"`
}

// IndexResponse is returned to the caller after a document is accepted for
// indexing.
type IndexResponse struct {
	DocumentID int    `json:"document_id"`
	Status     string `json:"status"`
}

// IndexEvent is the Kafka message payload carrying one accepted document.
type IndexEvent struct {
	Document   IndexRequest `json:"document"`
	AcceptedAt time.Time    `json:"accepted_at"`
}
