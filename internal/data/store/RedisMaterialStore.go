package store

import (
	"context"
	"encoding/json"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/internal/data/redisStore"
	"github.com/smandava/studyrag/internal/domain/ragModel"
	"github.com/smandava/studyrag/pkg/logger_i"
)

const (
	materialKeyPrefix = "material:"
	lockKeyPrefix     = "material-lock:"
)

type RedisMaterialStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisMaterialStore(ctx context.Context) (*RedisMaterialStore, error) {
	inner, err := redisStore.NewStore(ctx, config.RedisMaterialStore)
	if err != nil {
		return nil, err
	}
	return &RedisMaterialStore{
		store:  inner,
		logger: logger_i.NewLogger("MaterialStore"),
	}, nil
}

func (s *RedisMaterialStore) SaveMaterial(ctx context.Context, record ragModel.MaterialRecord) error {
	log := s.logger.With("documentId", record.DocumentId)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, materialKeyPrefix+record.DocumentId, data, config.RedisMaterialStoreTTL)
	if err == nil {
		log.Debug("Saved material record")
	}
	return err
}

func (s *RedisMaterialStore) GetMaterial(ctx context.Context, documentId string) (ragModel.MaterialRecord, bool) {
	var record ragModel.MaterialRecord

	val, err := s.store.Get(ctx, materialKeyPrefix+documentId)
	if s.store.IsNil(err) {
		return record, false
	} else if err != nil {
		s.logger.Error("Error reading material record", "documentId", documentId, "error", err)
		return record, false
	}

	if err = json.Unmarshal([]byte(val), &record); err != nil {
		s.logger.Error("Error unmarshalling material record", "documentId", documentId, "error", err)
		return record, false
	}
	return record, true
}

func (s *RedisMaterialStore) TryLockIngest(ctx context.Context, documentId string) (bool, error) {
	// TTL so a crashed holder can't wedge the document forever
	return s.store.SetNX(ctx, lockKeyPrefix+documentId, "1", config.IngestLockTTL)
}

func (s *RedisMaterialStore) UnlockIngest(ctx context.Context, documentId string) {
	if err := s.store.Del(ctx, lockKeyPrefix+documentId); err != nil {
		s.logger.Error("Error releasing ingest lock", "documentId", documentId, "error", err)
	}
}

// TestMaterialStore wires a store backed by an arbitrary client, e.g. miniredis.
func TestMaterialStore(inner *redisStore.Store) *RedisMaterialStore {
	return &RedisMaterialStore{
		store:  inner,
		logger: logger_i.NewLogger("test material store"),
	}
}
