package memstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the memory list as a Redis list. Suitable when several
// synthesis processes share one similarity memory.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. key defaults to
// "persona:similarity_memory" when empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "persona:similarity_memory"
	}
	return &RedisStore{client: client, key: key}
}

// Load returns the remembered entries, oldest first.
func (s *RedisStore) Load(ctx context.Context) ([]string, error) {
	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load memory list %s: %w", s.key, err)
	}
	return entries, nil
}

// Save replaces the list in one transaction so concurrent readers never see a
// partially written list.
func (s *RedisStore) Save(ctx context.Context, entries []string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	if len(entries) > 0 {
		values := make([]interface{}, len(entries))
		for i, e := range entries {
			values[i] = e
		}
		pipe.RPush(ctx, s.key, values...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save memory list %s: %w", s.key, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
