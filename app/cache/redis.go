package cache

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis shares the cache between several frontend instances.
type Redis struct {
	rdb *redis.Client
	ns  string
}

func NewRedis(rdb *redis.Client, namespace string) *Redis {
	if namespace == "" {
		namespace = "newlms:q:"
	}
	return &Redis{rdb: rdb, ns: namespace}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.rdb.Get(ctx, r.ns+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return errors.Wrap(r.rdb.Set(ctx, r.ns+key, val, ttl).Err(), "redis set")
}

func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.rdb.Scan(ctx, 0, escapeGlob(r.ns+prefix)+"*", 200).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 200 {
			if err := r.rdb.Del(ctx, batch...).Err(); err != nil {
				return errors.Wrap(err, "redis del")
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "redis scan")
	}
	if len(batch) > 0 {
		return errors.Wrap(r.rdb.Del(ctx, batch...).Err(), "redis del")
	}
	return nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
