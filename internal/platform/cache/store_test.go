package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[[]string](time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"Chiefs", "Bills"}, nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make([][]string, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "team:feed:nfl", loader)
			if err == nil {
				results[i] = v
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i, got := range results {
		assert.Equal(t, []string{"Chiefs", "Bills"}, got, "caller %d", i)
	}
}

func TestStore_GetOrLoad_ServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	first, err := store.GetOrLoad(context.Background(), "k", loader)
	require.NoError(t, err)
	second, err := store.GetOrLoad(context.Background(), "k", loader)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	loadErr := errors.New("feed down")
	var calls atomic.Int32
	loader := func(context.Context) (string, error) {
		calls.Add(1)
		return "", loadErr
	}

	for range 2 {
		_, err := store.GetOrLoad(context.Background(), "team:feed:nba", loader)
		require.ErrorIs(t, err, loadErr)
	}
	assert.Equal(t, int32(2), calls.Load())
	assert.Zero(t, store.Len())
}

func TestStore_GetOrLoad_RequiresLoader(t *testing.T) {
	t.Parallel()

	_, err := NewStore[string](time.Minute).GetOrLoad(context.Background(), "k", nil)
	require.Error(t, err)
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore[string](30 * time.Second)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "team:feed:nfl", "roster")
	got, ok := store.Get(ctx, "team:feed:nfl")
	require.True(t, ok)
	assert.Equal(t, "roster", got)

	now = now.Add(31 * time.Second)
	_, ok = store.Get(ctx, "team:feed:nfl")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestStore_SetSweepsExpiredEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore[string](time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "team:feed:nfl", "a")
	store.Set(ctx, "team:feed:nba", "b")
	now = now.Add(2 * time.Minute)
	store.Set(ctx, "team:feed:mlb", "c")

	assert.Equal(t, 1, store.Len())
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore[string](0)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	now = now.Add(24 * time.Hour)
	_, ok := store.Get(context.Background(), "k")
	assert.True(t, ok)
}
