package ragModel

import (
	"context"
	"time"
)

// ChunkRecord is one window of a document's text, in chunking order.
type ChunkRecord struct {
	SequenceIndex int    `json:"sequence_index"`
	Text          string `json:"text"`
}

// EmbeddingRecord is what the vector store persists. The chunk text is
// denormalized onto the record so retrieval never re-reads the source document.
type EmbeddingRecord struct {
	DocumentId    string    `json:"document_id"`
	SequenceIndex int       `json:"sequence_index"`
	ChunkText     string    `json:"chunk_text"`
	Vector        []float32 `json:"-"`
	IngestedAt    time.Time `json:"ingested_at"`
}

type RetrievalResult struct {
	ChunkText string  `json:"chunk_text"`
	Score     float32 `json:"score"`
}

// MaterialRecord is the bookkeeping row kept per ingested document.
type MaterialRecord struct {
	DocumentId   string    `json:"document_id"`
	Name         string    `json:"name,omitempty"`
	ChunkCount   int       `json:"chunk_count"`
	LastIngestAt time.Time `json:"last_ingest_at"`
}

type MaterialStore interface {
	SaveMaterial(ctx context.Context, record MaterialRecord) error
	GetMaterial(ctx context.Context, documentId string) (MaterialRecord, bool)

	// TryLockIngest returns false when another caller already holds the
	// per-document lock. Release is best effort.
	TryLockIngest(ctx context.Context, documentId string) (bool, error)
	UnlockIngest(ctx context.Context, documentId string)
}
