// internal/infrastructure/state/redis_store.go
package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session state in redis with a sliding expiration
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a redis backed store
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Key returns the redis key for a session's state document,
// e.g. storefront:<session>:cart
func (s *RedisStore) Key(sessionID, kind string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, sessionID, kind)
}

// Get implements Store
func (s *RedisStore) Get(ctx context.Context, sessionID, kind string) ([]byte, bool, error) {
	if sessionID == "" {
		return nil, false, ErrNoSession
	}

	data, err := s.client.Get(ctx, s.Key(sessionID, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s state: %w", kind, err)
	}

	return data, true, nil
}

// Put implements Store
func (s *RedisStore) Put(ctx context.Context, sessionID, kind string, payload []byte) error {
	if sessionID == "" {
		return ErrNoSession
	}

	if err := s.client.Set(ctx, s.Key(sessionID, kind), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s state: %w", kind, err)
	}
	return nil
}

// Delete implements Store
func (s *RedisStore) Delete(ctx context.Context, sessionID, kind string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	if err := s.client.Del(ctx, s.Key(sessionID, kind)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s state: %w", kind, err)
	}
	return nil
}
