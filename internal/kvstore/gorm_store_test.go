package kvstore

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyHistory, []byte(`[]`)))

	value, ok, err := store.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), value)
}

func TestGormStoreSetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCounter, []byte("1")))
	require.NoError(t, store.Set(ctx, KeyCounter, []byte("2")))

	value, ok, err := store.Get(ctx, KeyCounter)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("2"), value)
}

func TestGormStoreRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyDraft, []byte(`{}`)))
	require.NoError(t, store.Remove(ctx, KeyDraft))

	_, ok, err := store.Get(ctx, KeyDraft)
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is not an error.
	require.NoError(t, store.Remove(ctx, KeyDraft))
}
