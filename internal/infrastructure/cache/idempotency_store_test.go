package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idempotencyStore interface {
	Begin(ctx context.Context, key string, ttl time.Duration) (*RecordedResponse, bool, error)
	Complete(ctx context.Context, key string, resp RecordedResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

func newRedisIdempotencyStore(t *testing.T) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisIdempotencyStore(client), mr
}

func newInMemoryIdempotencyStore(t *testing.T) *InMemoryIdempotencyStore {
	t.Helper()
	s := NewInMemoryIdempotencyStore(time.Hour)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIdempotencyStores_Lifecycle(t *testing.T) {
	redisStore, _ := newRedisIdempotencyStore(t)
	stores := map[string]idempotencyStore{
		"redis":    redisStore,
		"inmemory": newInMemoryIdempotencyStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			resp, acquired, err := store.Begin(ctx, "k1", time.Minute)
			require.NoError(t, err)
			assert.True(t, acquired)
			assert.Nil(t, resp)

			resp, acquired, err = store.Begin(ctx, "k1", time.Minute)
			require.NoError(t, err)
			assert.False(t, acquired, "in flight")
			assert.Nil(t, resp)

			recorded := RecordedResponse{Status: 201, ContentType: "application/json", Body: []byte(`{"success":true}`)}
			require.NoError(t, store.Complete(ctx, "k1", recorded, time.Minute))

			resp, acquired, err = store.Begin(ctx, "k1", time.Minute)
			require.NoError(t, err)
			assert.False(t, acquired)
			require.NotNil(t, resp)
			assert.Equal(t, recorded, *resp)

			_, acquired, err = store.Begin(ctx, "k2", time.Minute)
			require.NoError(t, err)
			require.True(t, acquired)
			require.NoError(t, store.Release(ctx, "k2"))
			_, acquired, err = store.Begin(ctx, "k2", time.Minute)
			require.NoError(t, err)
			assert.True(t, acquired, "released keys can be claimed again")
		})
	}
}

func TestRedisIdempotencyStore_Expiry(t *testing.T) {
	store, mr := newRedisIdempotencyStore(t)
	ctx := context.Background()

	_, acquired, err := store.Begin(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(2 * time.Minute)
	_, acquired, err = store.Begin(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisIdempotencyStore_CorruptValue(t *testing.T) {
	store, mr := newRedisIdempotencyStore(t)
	require.NoError(t, mr.Set(idempotencyKeyPrefix+"k", "{oops"))

	_, _, err := store.Begin(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	store := newInMemoryIdempotencyStore(t)
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, _, _ = store.Begin(ctx, "short", time.Minute)
	_, _, _ = store.Begin(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Size())

	now = now.Add(2 * time.Minute)
	_, acquired, err := store.Begin(ctx, "short", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "expired claims are reclaimable before the sweep")

	now = now.Add(2 * time.Minute)
	store.sweep()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_ConcurrentBegin(t *testing.T) {
	store := newInMemoryIdempotencyStore(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := store.Begin(context.Background(), "same", time.Minute)
			if err == nil && ok {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, acquired)
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
