package memoryDB

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/smandava/studyrag/internal/domain/ragModel"
)

// Store is an in-process brute-force cosine store. It backs tests and small
// single-process deployments where running Qdrant is overkill.
type Store struct {
	mu      sync.RWMutex
	records []ragModel.EmbeddingRecord
}

func NewStore() *Store { return &Store{} }

func (s *Store) Init(ctx context.Context) error { return nil }

func (s *Store) UpsertBatch(ctx context.Context, records []ragModel.EmbeddingRecord) error {
	for _, r := range records {
		if len(r.Vector) == 0 {
			return errors.New("record has an empty vector")
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *Store) QuerySimilar(ctx context.Context, queryVector []float32, documentId string, limit int) ([]ragModel.RetrievalResult, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]ragModel.RetrievalResult, 0, len(s.records))
	for _, r := range s.records {
		if documentId != "" && r.DocumentId != documentId {
			continue
		}
		results = append(results, ragModel.RetrievalResult{
			ChunkText: r.ChunkText,
			Score:     cosine(queryVector, r.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func (s *Store) DeleteByDocument(ctx context.Context, documentId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if r.DocumentId != documentId {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

// Count reports how many embeddings the store holds for a document, or in
// total when documentId is empty.
func (s *Store) Count(documentId string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if documentId == "" {
		return len(s.records)
	}
	n := 0
	for _, r := range s.records {
		if r.DocumentId == documentId {
			n++
		}
	}
	return n
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
