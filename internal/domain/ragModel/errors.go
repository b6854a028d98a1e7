package ragModel

import (
	"errors"
	"fmt"
)

// ErrIngestInProgress is returned when another caller holds the per-document
// ingest lock.
var ErrIngestInProgress = errors.New("ingestion already in progress for this document")

// ProviderError wraps a failed embedding provider call.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StoreWriteError wraps a failed vector store write.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("vector store %s: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreReadError wraps a failed vector store query.
type StoreReadError struct {
	Op  string
	Err error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("vector store %s: %v", e.Op, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }
