package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/paypulse/showcase/ports"
)

// DefaultTokensKey is the Redis set holding valid access tokens
const DefaultTokensKey = "paypulse:tokens"

// RedisStore is a Redis implementation of the TokenStore interface, letting
// several server instances share one token set
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client redis.UniversalClient) ports.TokenStore {
	return &RedisStore{
		client: client,
		key:    DefaultTokensKey,
	}
}

// Add marks a token as valid. The set member never expires.
func (s *RedisStore) Add(ctx context.Context, token string) error {
	if err := s.client.SAdd(ctx, s.key, token).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

// Contains reports whether a token is a member of the set
func (s *RedisStore) Contains(ctx context.Context, token string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.key, token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}

	return ok, nil
}
