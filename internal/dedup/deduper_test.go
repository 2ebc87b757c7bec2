package dedup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore always errors, standing in for an unreachable or corrupt backend
type failingStore struct{}

func (failingStore) Get(context.Context) ([]int64, error) { return nil, errors.New("boom") }
func (failingStore) Add(context.Context, int64) error     { return errors.New("boom") }
func (failingStore) Trim(context.Context, []int64) error  { return errors.New("boom") }

func TestShouldAlertExactlyOncePerID(t *testing.T) {
	d := New(NewMemoryStore(), nil)
	ctx := context.Background()

	assert.True(t, d.ShouldAlert(ctx, 42))
	assert.False(t, d.ShouldAlert(ctx, 42))
	assert.False(t, d.ShouldAlert(ctx, 42))
	assert.True(t, d.ShouldAlert(ctx, 43))
}

func TestLedgerSurvivesRestart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	d := New(store, nil)
	require.True(t, d.ShouldAlert(ctx, 7))

	// a new deduplicator over the same store must not re-fire
	d2 := New(store, nil)
	assert.False(t, d2.ShouldAlert(ctx, 7))
	assert.True(t, d2.ShouldAlert(ctx, 8))
}

func TestTrimKeepsNewest300(t *testing.T) {
	store := NewMemoryStore()
	d := New(store, nil)
	ctx := context.Background()

	for id := int64(1); id <= 501; id++ {
		require.True(t, d.ShouldAlert(ctx, id))
	}

	assert.Equal(t, DefaultKeepEntries, d.Len())

	ids, err := store.Get(ctx)
	require.NoError(t, err)
	require.Len(t, ids, DefaultKeepEntries)
	// newest 300 are ids 202..501 in insertion order
	assert.Equal(t, int64(202), ids[0])
	assert.Equal(t, int64(501), ids[len(ids)-1])

	// trimmed-away ids were discarded, so they may fire again
	assert.True(t, d.ShouldAlert(ctx, 1))
	// retained ids still must not
	assert.False(t, d.ShouldAlert(ctx, 501))
}

func TestFailOpenOnBrokenStore(t *testing.T) {
	d := New(failingStore{}, nil)
	ctx := context.Background()

	// loading failed, so the ledger starts empty and alerts still fire
	assert.True(t, d.ShouldAlert(ctx, 1))
	// in-memory dedup still holds within the process
	assert.False(t, d.ShouldAlert(ctx, 1))
}

func TestSeededFromStoreWithDuplicates(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, 5))
	require.NoError(t, store.Add(ctx, 5))
	require.NoError(t, store.Add(ctx, 6))

	d := New(store, nil)

	assert.Equal(t, 2, d.Len())
	assert.False(t, d.ShouldAlert(ctx, 5))
	assert.False(t, d.ShouldAlert(ctx, 6))
}
