package library

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "library.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetPut(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, ok, err := store.get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.put(ctx, "k", []byte("one")))
	require.NoError(t, store.put(ctx, "k", []byte("two")))

	value, ok, err := store.get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(value))
}

func TestStore_UnreadableValueIsIgnored(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.put(ctx, keyLikedMovies, []byte("not json")))

	liked, err := store.Liked(ctx)
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	ctx := context.Background()

	store, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Like(ctx, "Heat"))
	require.NoError(t, store.Close())

	store, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	liked, err := store.Liked(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat"}, liked)
	assert.Equal(t, path, store.Path())
}

func TestStore_InMemory(t *testing.T) {
	store, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Like(ctx, "Alien"))
	liked, err := store.IsLiked(ctx, "Alien")
	require.NoError(t, err)
	assert.True(t, liked)
}
