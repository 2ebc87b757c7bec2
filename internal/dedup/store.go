package dedup

import (
	"context"
	"sync"
)

// SeenStore persists the ordered list of notification ids that have already
// triggered an alert. Implementations must keep insertion order; the trim
// policy relies on it.
type SeenStore interface {
	// Get returns every persisted id in insertion order
	Get(ctx context.Context) ([]int64, error)

	// Add appends one id
	Add(ctx context.Context, id int64) error

	// Trim replaces the persisted ids with the given ordered subset
	Trim(ctx context.Context, ids []int64) error
}

// MemoryStore is an in-process SeenStore. It does not survive a restart;
// the Redis store is the one used in production.
type MemoryStore struct {
	mu  sync.Mutex
	ids []int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns a copy of the stored ids
func (s *MemoryStore) Get(_ context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out, nil
}

// Add appends one id
func (s *MemoryStore) Add(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	return nil
}

// Trim replaces the stored ids
func (s *MemoryStore) Trim(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids[:0], ids...)
	return nil
}
