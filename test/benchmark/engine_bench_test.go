// Package benchmark contains Go benchmarks for the search engine core,
// measuring indexing throughput, query latency, and allocation behaviour.
package benchmark

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/ase77/searchserver/internal/engine"
	"github.com/ase77/searchserver/internal/engine/index"
	"github.com/ase77/searchserver/internal/engine/tokenizer"
)

var vocabulary = []string{
	"кот", "пёс", "скворец", "ошейник", "хвост", "лапа", "глаза",
	"белый", "пушистый", "ухоженный", "модный", "маленький", "огромный",
	"выразительный", "евгений", "василий", "птица", "зверь", "дом", "город",
}

func randomText(rng *rand.Rand, words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = vocabulary[rng.Intn(len(vocabulary))]
	}
	return strings.Join(parts, " ")
}

func seededServer(numDocs int) *engine.Server {
	s := engine.New()
	s.SetStopWords("и в на с")
	rng := rand.New(rand.NewSource(42))
	for id := 0; id < numDocs; id++ {
		_ = s.AddDocument(id, randomText(rng, 12), index.StatusActual, []int{rng.Intn(10) - 3})
	}
	return s
}

// BenchmarkAddDocument measures per-document indexing throughput.
func BenchmarkAddDocument(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	texts := make([]string, 1024)
	for i := range texts {
		texts[i] = randomText(rng, 12)
	}

	s := engine.New()
	s.SetStopWords("и в на с")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.AddDocument(i, texts[i%len(texts)], index.StatusActual, []int{5, -2, 3})
	}
}

// BenchmarkFindTopDocuments measures ranked search latency over corpora of
// increasing size.
func BenchmarkFindTopDocuments(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	for _, numDocs := range sizes {
		b.Run(fmt.Sprintf("docs_%d", numDocs), func(b *testing.B) {
			s := seededServer(numDocs)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				results, err := s.FindTopDocuments("пушистый ухоженный кот -лапа")
				if err != nil {
					b.Fatal(err)
				}
				_ = results
			}
		})
	}
}

// BenchmarkFindTopDocumentsQueryShape measures how query composition affects
// search latency at a fixed corpus size.
func BenchmarkFindTopDocumentsQueryShape(b *testing.B) {
	queries := []struct {
		name  string
		query string
	}{
		{"single_word", "кот"},
		{"multi_word", "пушистый ухоженный кот скворец"},
		{"with_minus", "пушистый кот -лапа -хвост"},
		{"rare_word", "евгений"},
	}
	s := seededServer(5000)
	for _, q := range queries {
		b.Run(q.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				results, err := s.FindTopDocuments(q.query)
				if err != nil {
					b.Fatal(err)
				}
				_ = results
			}
		})
	}
}

// BenchmarkMatchDocument measures single-document match latency.
func BenchmarkMatchDocument(b *testing.B) {
	s := seededServer(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		words, _, err := s.MatchDocument("пушистый ухоженный кот", i%10000)
		if err != nil {
			b.Fatal(err)
		}
		_ = words
	}
}

// BenchmarkSplitIntoWords measures raw tokenization throughput.
func BenchmarkSplitIntoWords(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	text := randomText(rng, 200)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		words := tokenizer.SplitIntoWords(text)
		_ = words
	}
}
