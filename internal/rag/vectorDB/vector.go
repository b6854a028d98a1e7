package vectorDB

import (
	"context"

	"github.com/smandava/studyrag/internal/domain/ragModel"
)

// Store is the vector persistence contract. Adapters own their backing
// collection; the core never builds backend queries itself.
type Store interface {
	// Init makes sure the backing collection exists. Safe to call repeatedly.
	Init(ctx context.Context) error

	UpsertBatch(ctx context.Context, records []ragModel.EmbeddingRecord) error

	// QuerySimilar returns up to limit results ordered by descending cosine
	// similarity. An empty documentId means unscoped search.
	QuerySimilar(ctx context.Context, queryVector []float32, documentId string, limit int) ([]ragModel.RetrievalResult, error)

	// DeleteByDocument removes every embedding owned by the document.
	DeleteByDocument(ctx context.Context, documentId string) error
}
