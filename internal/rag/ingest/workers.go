package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/smandava/studyrag/internal/domain/ragModel"
	"github.com/smandava/studyrag/internal/metrics"
)

type batchJob struct {
	start int
	end   int
}

// runBatches fans the chunk batches of one ingestion run across a small
// bounded worker pool. Chunk sequence indices stay in chunking order;
// persistence order across batches is not guaranteed - retrieval ranks by
// similarity, not by insertion order.
func (p *Pipeline) runBatches(ctx context.Context, documentId string, chunks []ragModel.ChunkRecord, isHugeDataSet bool, ingestedAt time.Time) error {
	numBatches := (len(chunks) + p.opts.BatchSize - 1) / p.opts.BatchSize
	workers := int(p.opts.MaxWorkers)
	if workers > numBatches {
		workers = numBatches
	}

	jobs := make(chan batchJob)
	done := make(chan struct{})
	var once sync.Once
	var runErr error
	fail := func(err error) {
		once.Do(func() {
			runErr = err
			close(done)
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.embedWorker(ctx, &wg, jobs, done, fail, documentId, chunks, isHugeDataSet, ingestedAt)
	}

feed:
	for i := 0; i < len(chunks); i += p.opts.BatchSize {
		end := i + p.opts.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		select {
		case jobs <- batchJob{start: i, end: end}:
		case <-done:
			break feed
		case <-ctx.Done():
			fail(ctx.Err())
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return runErr
}

func (p *Pipeline) embedWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan batchJob, done <-chan struct{}, fail func(error), documentId string, chunks []ragModel.ChunkRecord, isHugeDataSet bool, ingestedAt time.Time) {
	defer wg.Done()
	metrics.IncrementActiveEmbedWorkerCount()
	defer metrics.DecrementActiveEmbedWorkerCount()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			fail(ctx.Err())
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := p.processBatch(ctx, documentId, chunks[job.start:job.end], isHugeDataSet, ingestedAt); err != nil {
				fail(err)
				return
			}
		}
	}
}

func (p *Pipeline) processBatch(ctx context.Context, documentId string, batch []ragModel.ChunkRecord, isHugeDataSet bool, ingestedAt time.Time) error {
	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	start := time.Now()
	vectors, err := p.embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return &ragModel.ProviderError{Op: "batch embedding", Err: err}
	}
	if len(vectors) != len(batch) {
		return &ragModel.ProviderError{
			Op:  "batch embedding",
			Err: fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(batch)),
		}
	}

	records := make([]ragModel.EmbeddingRecord, len(batch))
	for i, c := range batch {
		records[i] = ragModel.EmbeddingRecord{
			DocumentId:    documentId,
			SequenceIndex: c.SequenceIndex,
			ChunkText:     c.Text,
			Vector:        vectors[i],
			IngestedAt:    ingestedAt,
		}
	}

	start = time.Now()
	err = p.store.UpsertBatch(ctx, records)
	metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start))
	if err != nil {
		return &ragModel.StoreWriteError{Op: "upsert batch", Err: err}
	}
	return nil
}
