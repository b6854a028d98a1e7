package redisStore

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smandava/studyrag/internal/config"
)

type Store struct {
	client *redis.Client
}

// NewStore dials Redis and verifies the connection with a ping. The address
// comes from REDIS_ADDR, falling back to the configured default.
func NewStore(ctx context.Context, dbIndex int) (*Store, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = config.RedisAddr
	}

	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              config.RedisPassword,
		DB:                    dbIndex,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := newClient.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis is offline: %w", err)
	}

	return &Store{client: newClient}, nil
}

// NewTestStore wraps an existing client, e.g. one pointed at miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	return s.client.Close()
}
