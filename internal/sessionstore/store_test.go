package sessionstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testKey() Key {
	return Key{
		BaseURL:  "https://faststats.example.com/api",
		DataView: "acme_inc",
		Username: "jdoe",
	}
}

func TestPutGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, testKey(), `{"session_id":"s-1"}`))

	payload, ok, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"session_id":"s-1"}`, payload)
}

func TestPut_ReplacesExistingEntry(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testKey(), "old"))
	require.NoError(t, store.Put(ctx, testKey(), "new"))

	payload, ok, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", payload)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGet_DistinguishesKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	other := testKey()
	other.Username = "asmith"
	require.NoError(t, store.Put(ctx, testKey(), "jdoe-session"))
	require.NoError(t, store.Put(ctx, other, "asmith-session"))

	payload, ok, err := store.Get(ctx, other)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "asmith-session", payload)
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testKey(), "payload"))
	require.NoError(t, store.Delete(ctx, testKey()))

	_, ok, err := store.Get(ctx, testKey())
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent entry is fine.
	require.NoError(t, store.Delete(ctx, testKey()))
}

func TestList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := testKey()
	b := testKey()
	b.DataView = "other_corp"
	require.NoError(t, store.Put(ctx, a, "a"))
	require.NoError(t, store.Put(ctx, b, "b"))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.False(t, e.SavedAt.IsZero())
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, testKey(), "payload"))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	payload, ok, err := second.Get(ctx, testKey())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "payload", payload)
}
