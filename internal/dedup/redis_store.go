package dedup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dbaweja699/PA-restaurant-sub001/pkg/cache"
)

// ProcessedIDsKey is the fixed key the ledger is persisted under, as a JSON
// array of notification ids.
const ProcessedIDsKey = "processed_notification_ids"

// RedisStore persists the seen-IDs ledger as a JSON array under a fixed
// Redis key. A corrupt or missing payload reads as an empty ledger so the
// worst case is a one-time re-fire, never a crash.
type RedisStore struct {
	cache *cache.Cache
	key   string
}

// NewRedisStore creates a Redis-backed seen store
func NewRedisStore(c *cache.Cache) *RedisStore {
	return &RedisStore{cache: c, key: ProcessedIDsKey}
}

// Get returns the persisted ids. Missing or unparseable state is treated as
// an empty ledger (fail open).
func (s *RedisStore) Get(ctx context.Context) ([]int64, error) {
	raw, err := s.cache.Get(ctx, s.key)
	if err != nil {
		if cache.IsNotFound(err) {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("failed to read seen ids: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// corrupt ledger: start over rather than refuse to alert
		return []int64{}, nil
	}
	return ids, nil
}

// Add appends one id to the persisted array
func (s *RedisStore) Add(ctx context.Context, id int64) error {
	ids, err := s.Get(ctx)
	if err != nil {
		return err
	}
	return s.put(ctx, append(ids, id))
}

// Trim replaces the persisted array
func (s *RedisStore) Trim(ctx context.Context, ids []int64) error {
	return s.put(ctx, ids)
}

func (s *RedisStore) put(ctx context.Context, ids []int64) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode seen ids: %w", err)
	}
	if err := s.cache.Set(ctx, s.key, string(raw), 0); err != nil {
		return fmt.Errorf("failed to write seen ids: %w", err)
	}
	return nil
}
