package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/smandava/studyrag/internal/config"
	"github.com/smandava/studyrag/internal/data/redisStore"
	"github.com/smandava/studyrag/internal/data/store"
	"github.com/smandava/studyrag/internal/domain/ragModel"
)

func newTestStore(t *testing.T) (*store.RedisMaterialStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestMaterialStore(redisStore.NewTestStore(client)), mr
}

func TestRedisMaterialStore_Lifecycle(t *testing.T) {
	materialStore, _ := newTestStore(t)
	ctx := context.Background()

	record := ragModel.MaterialRecord{
		DocumentId:   "doc-42",
		Name:         "cell-biology-notes",
		ChunkCount:   7,
		LastIngestAt: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := materialStore.SaveMaterial(ctx, record); err != nil {
			t.Fatalf("SaveMaterial failed: %v", err)
		}

		got, found := materialStore.GetMaterial(ctx, "doc-42")
		if !found {
			t.Fatal("material was saved but not found")
		}
		if got.ChunkCount != record.ChunkCount || got.Name != record.Name {
			t.Errorf("data mismatch: got %+v, want %+v", got, record)
		}
	})

	t.Run("Get Non-Existent Material", func(t *testing.T) {
		_, found := materialStore.GetMaterial(ctx, "ghost-doc")
		if found {
			t.Error("expected found=false for a non-existent document")
		}
	})
}

func TestRedisMaterialStore_IngestLock(t *testing.T) {
	materialStore, mr := newTestStore(t)
	ctx := context.Background()

	locked, err := materialStore.TryLockIngest(ctx, "doc-1")
	if err != nil || !locked {
		t.Fatalf("first lock attempt: locked=%v err=%v", locked, err)
	}

	locked, err = materialStore.TryLockIngest(ctx, "doc-1")
	if err != nil {
		t.Fatalf("second lock attempt errored: %v", err)
	}
	if locked {
		t.Error("second caller acquired a held lock")
	}

	// a different document is unaffected
	locked, err = materialStore.TryLockIngest(ctx, "doc-2")
	if err != nil || !locked {
		t.Errorf("lock on another document: locked=%v err=%v", locked, err)
	}

	materialStore.UnlockIngest(ctx, "doc-1")
	locked, err = materialStore.TryLockIngest(ctx, "doc-1")
	if err != nil || !locked {
		t.Errorf("relock after unlock: locked=%v err=%v", locked, err)
	}

	// a crashed holder's lock expires on its own
	mr.FastForward(config.IngestLockTTL + time.Second)
	locked, err = materialStore.TryLockIngest(ctx, "doc-2")
	if err != nil || !locked {
		t.Errorf("lock after TTL expiry: locked=%v err=%v", locked, err)
	}
}

func TestInMemoryMaterialStore(t *testing.T) {
	s := store.InitInMemoryMaterialStore()
	ctx := context.Background()

	if err := s.SaveMaterial(ctx, ragModel.MaterialRecord{DocumentId: "doc-A", ChunkCount: 3}); err != nil {
		t.Fatalf("SaveMaterial failed: %v", err)
	}
	got, found := s.GetMaterial(ctx, "doc-A")
	if !found || got.ChunkCount != 3 {
		t.Errorf("GetMaterial = (%+v, %v)", got, found)
	}

	locked, _ := s.TryLockIngest(ctx, "doc-A")
	if !locked {
		t.Fatal("could not take a free lock")
	}
	if relocked, _ := s.TryLockIngest(ctx, "doc-A"); relocked {
		t.Error("took a held lock")
	}
	s.UnlockIngest(ctx, "doc-A")
	if relocked, _ := s.TryLockIngest(ctx, "doc-A"); !relocked {
		t.Error("could not retake a released lock")
	}
}
