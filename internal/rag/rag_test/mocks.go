package rag_test

import (
	"context"

	"github.com/smandava/studyrag/internal/domain/ragModel"
)

// MockVectorStore implements vectorDB.Store
type MockVectorStore struct {
	OnUpsertBatch      func(ctx context.Context, records []ragModel.EmbeddingRecord) error
	OnQuerySimilar     func(ctx context.Context, queryVector []float32, documentId string, limit int) ([]ragModel.RetrievalResult, error)
	OnDeleteByDocument func(ctx context.Context, documentId string) error
}

func (m *MockVectorStore) Init(ctx context.Context) error { return nil }

func (m *MockVectorStore) UpsertBatch(ctx context.Context, records []ragModel.EmbeddingRecord) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, records)
	}
	return nil
}

func (m *MockVectorStore) QuerySimilar(ctx context.Context, queryVector []float32, documentId string, limit int) ([]ragModel.RetrievalResult, error) {
	if m.OnQuerySimilar != nil {
		return m.OnQuerySimilar(ctx, queryVector, documentId, limit)
	}
	return []ragModel.RetrievalResult{{ChunkText: "default context", Score: 0.9}}, nil
}

func (m *MockVectorStore) DeleteByDocument(ctx context.Context, documentId string) error {
	if m.OnDeleteByDocument != nil {
		return m.OnDeleteByDocument(ctx, documentId)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2}
	}
	return vectors, nil
}
