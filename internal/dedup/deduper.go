// Package dedup decides exactly once per notification id whether a
// user-visible alert should fire, backed by a persisted seen-IDs ledger.
package dedup

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	// DefaultMaxEntries is the ledger size that triggers a trim
	DefaultMaxEntries = 500

	// DefaultKeepEntries is how many of the newest ids survive a trim
	DefaultKeepEntries = 300
)

// Deduplicator tracks which notification ids have already triggered an
// alert. The check and the ledger write happen under one lock, so an id can
// never fire twice even when two poll cycles deliver it concurrently.
type Deduplicator struct {
	mu    sync.Mutex
	seen  map[int64]struct{}
	order []int64

	store SeenStore
	log   *zap.Logger

	maxEntries  int
	keepEntries int
}

// New creates a deduplicator seeded from the store. A store read failure is
// logged and treated as an empty ledger: notifications may re-fire once, but
// the alert pipeline keeps working.
func New(store SeenStore, log *zap.Logger) *Deduplicator {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Deduplicator{
		seen:        make(map[int64]struct{}),
		store:       store,
		log:         log,
		maxEntries:  DefaultMaxEntries,
		keepEntries: DefaultKeepEntries,
	}

	ids, err := store.Get(context.Background())
	if err != nil {
		log.Warn("failed to load seen-IDs ledger, starting empty", zap.Error(err))
		return d
	}

	for _, id := range ids {
		if _, dup := d.seen[id]; dup {
			continue
		}
		d.seen[id] = struct{}{}
		d.order = append(d.order, id)
	}

	return d
}

// ShouldAlert reports whether this id has never alerted before. On true the
// id is recorded in memory and persisted before the caller fires the alert,
// so a restart cannot re-fire it.
func (d *Deduplicator) ShouldAlert(ctx context.Context, id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return false
	}

	d.seen[id] = struct{}{}
	d.order = append(d.order, id)

	if err := d.store.Add(ctx, id); err != nil {
		// fail open: the alert still fires, it may just re-fire after a restart
		d.log.Warn("failed to persist seen id", zap.Int64("notification_id", id), zap.Error(err))
	}

	if len(d.order) > d.maxEntries {
		d.trimLocked(ctx)
	}

	return true
}

// Len returns the current ledger size
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

// trimLocked retains only the newest keepEntries ids by insertion order.
// Approximate LRU: re-fires of old ids do not refresh their position.
func (d *Deduplicator) trimLocked(ctx context.Context) {
	keep := d.order[len(d.order)-d.keepEntries:]

	kept := make([]int64, len(keep))
	copy(kept, keep)

	d.order = kept
	d.seen = make(map[int64]struct{}, len(kept))
	for _, id := range kept {
		d.seen[id] = struct{}{}
	}

	if err := d.store.Trim(ctx, kept); err != nil {
		d.log.Warn("failed to trim seen-IDs ledger", zap.Error(err))
	}
}
