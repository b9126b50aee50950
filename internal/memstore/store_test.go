package memstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "memory.json"))

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "memory.json")
	store := NewFileStore(path)
	ctx := context.Background()

	want := []string{"first blob", "second blob"}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_SaveReplacesEntries(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "memory.json"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []string{"a", "b", "c"}))
	require.NoError(t, store.Save(ctx, []string{"only"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got)
}

func TestFileStore_SaveNil(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "memory.json"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, nil))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, "")
}

func TestRedisStore_LoadEmpty(t *testing.T) {
	store := newTestRedisStore(t)

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisStore_SaveAndLoad_PreservesOrder(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	want := []string{"oldest", "middle", "newest"}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisStore_SaveReplacesEntries(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []string{"a", "b"}))
	require.NoError(t, store.Save(ctx, []string{"c"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got)
}
