package chunker

import (
	"strings"

	"github.com/smandava/studyrag/internal/domain/ragModel"
)

// Separator splits on the best available natural boundary instead of hard
// cutting mid-word. Windowed is the default strategy; this one trades the
// exact-overlap invariant for cleaner chunk edges on prose-heavy material.
type Separator struct {
	limit   int
	overlap int
}

func NewSeparator(limit, overlap int) (*Separator, error) {
	if _, err := NewWindowed(limit, overlap); err != nil {
		return nil, err
	}
	return &Separator{limit: limit, overlap: overlap}, nil
}

// Split ordered from "best" to "worst" boundary for semantic meaning.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

func (c *Separator) Split(text string) []ragModel.ChunkRecord {
	if text == "" {
		return nil
	}
	return toRecords(c.split(text))
}

func (c *Separator) split(text string) []string {
	// If text is already small enough, just return it
	if len(text) <= c.limit {
		return []string{text}
	}

	var splitChar string
	found := false
	for _, s := range separators {
		if s != "" && strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		// Hard cut if no separator found (rare)
		return []string{text[:c.limit]}
	}

	parts := strings.Split(text, splitChar)
	var chunks []string
	var currentChunk strings.Builder

	for _, part := range parts {
		if currentChunk.Len()+len(part)+len(splitChar) > c.limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			// Start the next chunk with the tail of the previous one
			overlapContent := ""
			if currentChunk.Len() > c.overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-c.overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

func toRecords(texts []string) []ragModel.ChunkRecord {
	records := make([]ragModel.ChunkRecord, 0, len(texts))
	for i, t := range texts {
		records = append(records, ragModel.ChunkRecord{SequenceIndex: i, Text: t})
	}
	return records
}
