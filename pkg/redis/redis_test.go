package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwtpizza/pizza-service/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) (*SessionCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionCache(client, ttl), mr
}

func TestSessionCache_RevokeAndCheck(t *testing.T) {
	cache, mr := setupCache(t, time.Hour)
	ctx := context.Background()

	revoked, err := cache.IsSessionRevoked(ctx, "sig-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, cache.RevokeSession(ctx, "sig-1"))

	revoked, err = cache.IsSessionRevoked(ctx, "sig-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("session:revoked:sig-1"))

	revoked, err = cache.IsSessionRevoked(ctx, "sig-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionCache_Expiry(t *testing.T) {
	cache, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.RevokeSession(ctx, "sig"))
	mr.FastForward(2 * time.Minute)

	revoked, err := cache.IsSessionRevoked(ctx, "sig")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionCache_EmptySignature(t *testing.T) {
	cache, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.RevokeSession(ctx, ""))
	assert.Empty(t, mr.Keys())

	revoked, err := cache.IsSessionRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionCache_ServerDown(t *testing.T) {
	cache, mr := setupCache(t, time.Minute)
	mr.Close()

	_, err := cache.IsSessionRevoked(context.Background(), "sig")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := strings.Cut(mr.Addr(), ":")

	client, err := NewClient(config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = NewClient(config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}
