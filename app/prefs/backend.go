package prefs

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Backend persists raw preference values per user.
type Backend interface {
	Get(ctx context.Context, user, key string) (string, bool, error)
	Set(ctx context.Context, user, key, value string) error
	Delete(ctx context.Context, user string, keys ...string) error
}

type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Get(_ context.Context, user, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[user][key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, user, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[user] == nil {
		m.data[user] = make(map[string]string)
	}
	m.data[user][key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, user string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data[user], k)
	}
	return nil
}

// Redis keeps one hash per user, one field per preference key.
type Redis struct {
	rdb *redis.Client
	ns  string
}

func NewRedis(rdb *redis.Client, namespace string) *Redis {
	if namespace == "" {
		namespace = "newlms:prefs:"
	}
	return &Redis{rdb: rdb, ns: namespace}
}

func (r *Redis) Get(ctx context.Context, user, key string) (string, bool, error) {
	v, err := r.rdb.HGet(ctx, r.ns+user, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "prefs: redis get")
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, user, key, value string) error {
	return errors.Wrap(r.rdb.HSet(ctx, r.ns+user, key, value).Err(), "prefs: redis set")
}

func (r *Redis) Delete(ctx context.Context, user string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return errors.Wrap(r.rdb.HDel(ctx, r.ns+user, keys...).Err(), "prefs: redis delete")
}
