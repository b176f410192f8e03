package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store with a controllable clock.
func setupTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	now := time.Unix(1700000000, 0)
	store.WithClock(func() time.Time { return now })
	return store, &now
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store, _ := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	first, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "k", []byte("v"), time.Hour))
	require.NoError(t, first.Close())

	second, err := NewStore(path)
	require.NoError(t, err)
	defer second.Close()

	val, ok, err := second.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(val))
	assert.Equal(t, path, second.Path())
}

func TestStore_PutGetOverwrite(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notion:o:u:token", []byte("one"), time.Hour))
	require.NoError(t, store.Put(ctx, "notion:o:u:token", []byte("two"), time.Hour))

	val, ok, err := store.Get(ctx, "notion:o:u:token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(val))
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupTestStore(t)

	val, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestStore_Expiry(t *testing.T) {
	store, now := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v"), 600*time.Second))

	*now = now.Add(600 * time.Second)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	store, now := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "live", []byte("v"), time.Minute))
	require.NoError(t, store.Put(ctx, "stale", []byte("v"), time.Second))
	*now = now.Add(time.Second)

	removed, err := store.Delete(ctx, "live")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, "live")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = store.Delete(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_PurgeExpired(t *testing.T) {
	store, now := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", []byte("v"), time.Minute))
	require.NoError(t, store.Put(ctx, "b", []byte("v"), time.Minute))
	require.NoError(t, store.Put(ctx, "c", []byte("v"), time.Hour))
	*now = now.Add(5 * time.Minute)

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, err := store.Get(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_ConcurrentDeleteRemovesOnce(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "state", []byte("v"), time.Minute))

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			removed, err := store.Delete(ctx, "state")
			if err == nil && removed {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
