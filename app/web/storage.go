package web

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStorage is a fiber.Storage for sessions on go-redis, used when the
// cache driver is redis so drafts survive restarts and are shared between
// instances.
type RedisStorage struct {
	rdb *redis.Client
	ns  string
}

func NewRedisStorage(rdb *redis.Client, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = "newlms:sess:"
	}
	return &RedisStorage{rdb: rdb, ns: namespace}
}

func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.rdb.Get(context.Background(), s.ns+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.rdb.Set(context.Background(), s.ns+key, val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.rdb.Del(context.Background(), s.ns+key).Err()
}

// Reset drops every session under the namespace.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.rdb.Scan(ctx, 0, s.ns+"*", 200).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; main owns the client.
func (s *RedisStorage) Close() error { return nil }
