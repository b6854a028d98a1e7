package chunker

import (
	"errors"
	"fmt"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/internal/domain/ragModel"
)

// ErrInvalidConfig signals a chunk size / overlap combination that can never
// make progress. It is caught at construction time, never mid-run.
var ErrInvalidConfig = errors.New("invalid chunker config")

// Windowed splits text into fixed-size overlapping windows. Splitting is
// character based (runes, not tokens); token-aware chunking would be a
// separate strategy.
type Windowed struct {
	chunkSize int
	overlap   int
}

func NewWindowed(chunkSize, overlap int) (*Windowed, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must be non-negative", ErrInvalidConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidConfig, overlap, chunkSize)
	}
	return &Windowed{chunkSize: chunkSize, overlap: overlap}, nil
}

func Default() *Windowed {
	w, _ := NewWindowed(config.DefaultChunkSize, config.DefaultOverlap)
	return w
}

// Split is a pure function: the same text always yields the same sequence.
// Consecutive chunks share exactly `overlap` characters; the final chunk may
// be shorter. Empty input yields no chunks. For text of length L the chunk
// count is ceil((L-overlap)/(chunkSize-overlap)), bounded below by 1.
func (w *Windowed) Split(text string) []ragModel.ChunkRecord {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	step := w.chunkSize - w.overlap

	var chunks []ragModel.ChunkRecord
	for offset := 0; offset < len(runes); offset += step {
		end := offset + w.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, ragModel.ChunkRecord{
			SequenceIndex: len(chunks),
			Text:          string(runes[offset:end]),
		})
		if end == len(runes) {
			// a trailing window here would be pure overlap
			break
		}
	}
	return chunks
}

func (w *Windowed) ChunkSize() int { return w.chunkSize }
func (w *Windowed) Overlap() int   { return w.overlap }
