package rag

import (
	"context"
	"errors"
	"strings"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/internal/domain/ragModel"
	"github.com/smandava/studyrag/internal/metrics"
	"github.com/smandava/studyrag/internal/rag/chunker"
	"github.com/smandava/studyrag/internal/rag/embedding"
	"github.com/smandava/studyrag/internal/rag/ingest"
	"github.com/smandava/studyrag/internal/rag/vectorDB"
	"github.com/smandava/studyrag/pkg/logger_i"
)

// Service is the contract the surrounding application consumes. The
// application layer calls IngestDocument when study material is created or
// updated; the chat layer calls RetrieveContext to ground its prompt.
type Service interface {
	// IngestDocument returns the number of chunks embedded. Failures
	// surface loudly - a silently incomplete knowledge base is worse than
	// a visible error.
	IngestDocument(ctx context.Context, documentId string, content string) (int, error)

	// RetrieveContext returns the most relevant passages joined into one
	// context string, scoped to documentId when non-empty. It degrades to
	// "" on any failure: the chat layer answers from general knowledge
	// when no context is available, so retrieval must never block it.
	RetrieveContext(ctx context.Context, query string, documentId string, limit int) string
}

type service struct {
	store        vectorDB.Store
	embedder     embedding.Embedder
	pipeline     *ingest.Pipeline
	separator    string
	defaultLimit int
	logger       *logger_i.Logger
}

// NewService wires the collaborators together. Chunking parameters are
// validated here, never mid-run.
func NewService(store vectorDB.Store, em embedding.Embedder, opts ...Option) (Service, error) {
	if store == nil {
		return nil, errors.New("a vector store is required")
	}
	if em == nil {
		return nil, errors.New("an embedding provider is required")
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	splitter := s.splitter
	if splitter == nil {
		w, err := chunker.NewWindowed(s.chunkSize, s.overlap)
		if err != nil {
			return nil, err
		}
		splitter = w
	}

	pipeline, err := ingest.NewPipeline(splitter, em, store, ingest.Options{
		BatchSize:        s.batchSize,
		MaxWorkers:       s.maxWorkers,
		ReplaceExisting:  s.replaceExisting,
		HugeDocThreshold: s.hugeDocThreshold,
		Materials:        s.materials,
	})
	if err != nil {
		return nil, err
	}

	return &service{
		store:        store,
		embedder:     em,
		pipeline:     pipeline,
		separator:    s.separator,
		defaultLimit: s.defaultLimit,
		logger:       logger_i.NewLogger("RAG Service"),
	}, nil
}

func (s *service) IngestDocument(ctx context.Context, documentId string, content string) (int, error) {
	return s.pipeline.Ingest(ctx, documentId, content)
}

func (s *service) RetrieveContext(ctx context.Context, query string, documentId string, limit int) string {
	log := s.logger.With("documentId", documentId)

	if query == "" {
		return ""
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	queryVector, err := s.executeEmbeddingStep(ctx, query)
	if err != nil {
		log.Error("Query embedding failed, returning empty context", "error", err)
		metrics.IncrementEmptyContext("provider_error")
		return ""
	}

	matches, err := s.executeVectorSearchStep(ctx, queryVector, documentId, limit)
	if err != nil {
		log.Error("Vector search failed, returning empty context", "error", err)
		metrics.IncrementEmptyContext("store_error")
		return ""
	}
	if len(matches) == 0 {
		return ""
	}

	return joinMatches(matches, s.separator)
}

func joinMatches(matches []ragModel.RetrievalResult, separator string) string {
	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, m.ChunkText)
	}
	return strings.Join(texts, separator)
}

func defaultSettings() settings {
	return settings{
		chunkSize:        config.DefaultChunkSize,
		overlap:          config.DefaultOverlap,
		batchSize:        config.EmbeddingBatchSize,
		maxWorkers:       config.MaxEmbedWorkers,
		hugeDocThreshold: config.HugeDocThreshold,
		replaceExisting:  true,
		separator:        config.ContextSeparator,
		defaultLimit:     config.DefaultRetrievalLimit,
	}
}
