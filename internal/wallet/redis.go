package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "wallet:"

// RedisStore keeps bindings in redis so several bot processes can share
// them. Bindings have no TTL; they live until an explicit disconnect.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Get returns the binding for a user, or nil when none exists.
func (s *RedisStore) Get(ctx context.Context, userID string) (*Binding, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet binding: %w", err)
	}

	var binding Binding
	if err := json.Unmarshal(data, &binding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet binding: %w", err)
	}
	return &binding, nil
}

// Set stores the binding for a user.
func (s *RedisStore) Set(ctx context.Context, userID string, binding *Binding) error {
	data, err := json.Marshal(binding)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet binding: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+userID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save wallet binding: %w", err)
	}
	return nil
}

// Remove deletes the binding for a user.
func (s *RedisStore) Remove(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete wallet binding: %w", err)
	}
	return nil
}
