package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps every key under a common prefix in Redis.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv/redis: get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("kv/redis: set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("kv/redis: del %s: %w", key, err)
	}
	return nil
}
