package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/internal/domain/ragModel"
	"github.com/smandava/studyrag/internal/metrics"
	"github.com/smandava/studyrag/internal/rag/embedding"
	"github.com/smandava/studyrag/internal/rag/vectorDB"
	"github.com/smandava/studyrag/pkg/logger_i"
)

// Splitter is the chunking strategy contract. See the chunker package for
// the windowed default and the separator-aware alternative.
type Splitter interface {
	Split(text string) []ragModel.ChunkRecord
}

type Options struct {
	BatchSize  int
	MaxWorkers int64
	// ReplaceExisting purges the document's previous embeddings before a
	// re-ingest so repeated edits don't accumulate stale vectors.
	ReplaceExisting  bool
	HugeDocThreshold int
	// Materials is optional bookkeeping. When set it also guards against
	// two callers ingesting the same document at once.
	Materials ragModel.MaterialStore
}

type Pipeline struct {
	splitter  Splitter
	embedder  embedding.Embedder
	store     vectorDB.Store
	materials ragModel.MaterialStore
	opts      Options
	logger    *logger_i.Logger
}

func NewPipeline(splitter Splitter, em embedding.Embedder, store vectorDB.Store, opts Options) (*Pipeline, error) {
	if splitter == nil || em == nil || store == nil {
		return nil, errors.New("ingest pipeline needs a splitter, an embedder and a vector store")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = config.EmbeddingBatchSize
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = config.MaxEmbedWorkers
	}
	if opts.HugeDocThreshold <= 0 {
		opts.HugeDocThreshold = config.HugeDocThreshold
	}

	return &Pipeline{
		splitter:  splitter,
		embedder:  em,
		store:     store,
		materials: opts.Materials,
		opts:      opts,
		logger:    logger_i.NewLogger("Document Ingestion"),
	}, nil
}

// Ingest chunks the content, embeds every chunk and persists one embedding
// record per chunk. It returns the number of chunks embedded. Empty content
// is a no-op, not an error. Provider and store failures surface to the
// caller - a partially ingested document is a visible outcome, never a
// silent one.
func (p *Pipeline) Ingest(ctx context.Context, documentId string, content string) (int, error) {
	start := time.Now()
	status := "complete"
	defer func() { metrics.CaptureIngestMetrics(status, time.Since(start)) }()

	log := p.logger.With("documentId", documentId)

	if documentId == "" {
		status = "error"
		return 0, errors.New("document id is required")
	}
	if content == "" {
		log.Debug("empty content, nothing to ingest")
		return 0, nil
	}

	if p.materials != nil {
		locked, err := p.materials.TryLockIngest(ctx, documentId)
		if err != nil {
			// the lock is advisory, run unguarded when the store is down
			log.Error("Ingest lock unavailable", "error", err)
		} else if !locked {
			status = "locked"
			return 0, ragModel.ErrIngestInProgress
		} else {
			defer p.materials.UnlockIngest(ctx, documentId)
		}
	}

	chunks := p.splitter.Split(content)
	log.Debug("Processing document", "chunks", len(chunks))
	if len(chunks) == 0 {
		return 0, nil
	}

	if p.opts.ReplaceExisting {
		if err := p.store.DeleteByDocument(ctx, documentId); err != nil {
			status = "error"
			return 0, &ragModel.StoreWriteError{Op: "delete previous embeddings", Err: err}
		}
	}

	isHugeDataSet := len(chunks) >= p.opts.HugeDocThreshold
	if isHugeDataSet {
		log.Debug("Is a huge dataset")
	}

	ingestedAt := time.Now()
	if err := p.runBatches(ctx, documentId, chunks, isHugeDataSet, ingestedAt); err != nil {
		status = "error"
		return 0, err
	}

	metrics.AddChunksEmbedded(len(chunks))

	if p.materials != nil {
		record := ragModel.MaterialRecord{
			DocumentId:   documentId,
			ChunkCount:   len(chunks),
			LastIngestAt: ingestedAt,
		}
		if err := p.materials.SaveMaterial(ctx, record); err != nil {
			log.Error("Failed to save material record", "error", err)
		}
	}

	log.Debug("Ingestion finished", "chunks", len(chunks))
	return len(chunks), nil
}
