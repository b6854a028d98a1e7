package rag

import (
	"github.com/smandava/studyrag/internal/domain/ragModel"
	"github.com/smandava/studyrag/internal/rag/ingest"
)

type settings struct {
	chunkSize        int
	overlap          int
	splitter         ingest.Splitter
	batchSize        int
	maxWorkers       int64
	hugeDocThreshold int
	replaceExisting  bool
	materials        ragModel.MaterialStore
	separator        string
	defaultLimit     int
}

type Option func(*settings)

// WithChunking overrides the windowed chunker's size and overlap. Validation
// happens in NewService.
func WithChunking(chunkSize, overlap int) Option {
	return func(s *settings) {
		s.chunkSize = chunkSize
		s.overlap = overlap
	}
}

// WithSplitter swaps in a different chunking strategy entirely, e.g. the
// separator-aware splitter.
func WithSplitter(splitter ingest.Splitter) Option {
	return func(s *settings) { s.splitter = splitter }
}

func WithBatchSize(n int) Option {
	return func(s *settings) { s.batchSize = n }
}

func WithMaxWorkers(n int64) Option {
	return func(s *settings) { s.maxWorkers = n }
}

// WithReplaceExisting controls whether a re-ingest first purges the
// document's previous embeddings. Defaults to true; turn it off to keep the
// append-only behavior where duplicates accumulate.
func WithReplaceExisting(replace bool) Option {
	return func(s *settings) { s.replaceExisting = replace }
}

func WithMaterialStore(store ragModel.MaterialStore) Option {
	return func(s *settings) { s.materials = store }
}

func WithSeparator(separator string) Option {
	return func(s *settings) { s.separator = separator }
}

func WithDefaultLimit(limit int) Option {
	return func(s *settings) { s.defaultLimit = limit }
}
