package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStore_AddContains(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := NewRedisStore(client)

	ok, err := s.Contains(ctx, "not-a-real-token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Add(ctx, "abc"))

	ok, err = s.Contains(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	isMember, err := mr.SIsMember(DefaultTokensKey, "abc")
	require.NoError(t, err)
	assert.True(t, isMember)
	assert.Zero(t, mr.TTL(DefaultTokensKey), "token set must not expire")
}

func TestRedisStore_SharedBetweenInstances(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)

	first := NewRedisStore(client)
	second := NewRedisStore(client)

	require.NoError(t, first.Add(ctx, "shared"))

	ok, err := second.Contains(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := NewRedisStore(client)

	mr.Close()

	assert.Error(t, s.Add(ctx, "abc"))

	_, err := s.Contains(ctx, "abc")
	assert.Error(t, err)
}
