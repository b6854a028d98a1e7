package rag

import (
	"context"
	"time"

	"github.com/smandava/studyrag/internal/domain/ragModel"
	"github.com/smandava/studyrag/internal/metrics"
)

func (s *service) executeEmbeddingStep(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("query_embedding", time.Since(start)) }()

	vector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, &ragModel.ProviderError{Op: "query embedding", Err: err}
	}
	return vector, nil
}

func (s *service) executeVectorSearchStep(ctx context.Context, queryVector []float32, documentId string, limit int) ([]ragModel.RetrievalResult, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	matches, err := s.store.QuerySimilar(ctx, queryVector, documentId, limit)
	if err != nil {
		return nil, &ragModel.StoreReadError{Op: "similarity query", Err: err}
	}
	return matches, nil
}
