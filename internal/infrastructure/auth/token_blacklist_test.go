package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/infrastructure/auth"
)

func newRedisBlacklist(t *testing.T) (*auth.RedisTokenBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return auth.NewRedisTokenBlacklist(client), mr
}

func TestRedisTokenBlacklist_Revoke(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.True(t, mr.Exists("syncworks:auth:jti:jti-1"))
	assert.Equal(t, time.Hour, mr.TTL("syncworks:auth:jti:jti-1"))

	mr.FastForward(2 * time.Hour)
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenBlacklist_RevokeIgnoresExpiredToken(t *testing.T) {
	bl, mr := newRedisBlacklist(t)

	require.NoError(t, bl.Revoke(context.Background(), "jti-old", 0))
	assert.False(t, mr.Exists("syncworks:auth:jti:jti-old"))
}

func TestRedisTokenBlacklist_RevokeUser(t *testing.T) {
	bl, _ := newRedisBlacklist(t)
	ctx := context.Background()
	issuedBefore := time.Now().Add(-time.Hour)

	revoked, err := bl.IsUserRevoked(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.RevokeUser(ctx, "user-1", 24*time.Hour))

	revoked, err = bl.IsUserRevoked(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsUserRevoked(ctx, "user-1", time.Now().Add(2*time.Second))
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = bl.IsUserRevoked(ctx, "user-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenBlacklist_CorruptTimestamp(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	require.NoError(t, mr.Set("syncworks:auth:user:user-1", "not-a-number"))

	_, err := bl.IsUserRevoked(context.Background(), "user-1", time.Now())
	assert.Error(t, err)
}

func TestRedisTokenBlacklist_ConnectionError(t *testing.T) {
	bl, mr := newRedisBlacklist(t)
	mr.Close()

	_, err := bl.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Expiry(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-short", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := bl.IsRevoked(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeUser(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	issuedBefore := time.Now().Add(-time.Hour)

	require.NoError(t, bl.RevokeUser(ctx, "user-1", time.Hour))

	revoked, err := bl.IsUserRevoked(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsUserRevoked(ctx, "user-1", time.Now().Add(2*time.Second))
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = bl.IsUserRevoked(ctx, "user-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Concurrent(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = bl.Revoke(ctx, "jti", time.Minute)
				_, _ = bl.IsRevoked(ctx, "jti")
				_ = bl.RevokeUser(ctx, "user", time.Minute)
				_, _ = bl.IsUserRevoked(ctx, "user", time.Now())
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
