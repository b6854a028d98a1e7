package store

import (
	"context"
	"sync"

	"github.com/smandava/studyrag/internal/domain/ragModel"
)

// InMemoryMaterialStore is the fallback when Redis is unavailable and the
// store of choice in tests.
type InMemoryMaterialStore struct {
	mu      sync.Mutex
	records map[string]ragModel.MaterialRecord
	locks   map[string]bool
}

func InitInMemoryMaterialStore() *InMemoryMaterialStore {
	return &InMemoryMaterialStore{
		records: make(map[string]ragModel.MaterialRecord),
		locks:   make(map[string]bool),
	}
}

func (s *InMemoryMaterialStore) SaveMaterial(ctx context.Context, record ragModel.MaterialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.DocumentId] = record
	return nil
}

func (s *InMemoryMaterialStore) GetMaterial(ctx context.Context, documentId string) (ragModel.MaterialRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, found := s.records[documentId]
	return record, found
}

func (s *InMemoryMaterialStore) TryLockIngest(ctx context.Context, documentId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[documentId] {
		return false, nil
	}
	s.locks[documentId] = true
	return true, nil
}

func (s *InMemoryMaterialStore) UnlockIngest(ctx context.Context, documentId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, documentId)
}
