// Package cache is the query cache shared by every page of one user.
package cache

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is a byte store with expiry and prefix deletion.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type ctxKey int

const scopeKey ctxKey = iota

// WithScope sets the cache scope (one per signed-in user) for ctx.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

func ScopeFrom(ctx context.Context) string {
	s, _ := ctx.Value(scopeKey).(string)
	if s == "" {
		return "anon"
	}
	return s
}

// Key builds scope|endpoint?params. url.Values.Encode sorts by key, so the
// same filter always yields the same key.
func Key(scope, endpoint string, params url.Values) string {
	var b strings.Builder
	b.WriteString(scope)
	b.WriteByte('|')
	b.WriteString(endpoint)
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(params.Encode())
	}
	return b.String()
}

type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
	log   *zap.Logger
}

func New(store Store, ttl time.Duration, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{store: store, ttl: ttl, log: log}
}

// Store exposes the backing store (the scheduler sweeps memory stores).
func (c *Cache) Store() Store { return c.store }

// Query returns the cached value for endpoint+params in the caller's scope,
// loading it at most once across concurrent callers. Store failures are
// logged and fall through to load.
func Query[T any](ctx context.Context, c *Cache, endpoint string, params url.Values, load func(context.Context) (T, error)) (T, error) {
	key := Key(ScopeFrom(ctx), endpoint, params)

	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var v T
		if err := sonic.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		c.log.Warn("cache entry undecodable", zap.String("key", key))
	}

	// the load is shared by every waiter on key, so one caller going away
	// must not cancel it for the rest
	shared := context.WithoutCancel(ctx)
	res, err, _ := c.group.Do(key, func() (any, error) {
		v, err := load(shared)
		if err != nil {
			return v, err
		}
		if raw, err := sonic.Marshal(v); err == nil {
			if err := c.store.Set(shared, key, raw, c.ttl); err != nil {
				c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
			}
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Invalidate drops every cached query of the caller's scope whose endpoint
// starts with one of the prefixes.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...string) {
	scope := ScopeFrom(ctx)
	for _, p := range prefixes {
		if err := c.store.DeletePrefix(ctx, scope+"|"+p); err != nil {
			c.log.Warn("cache invalidate failed", zap.String("prefix", p), zap.Error(err))
		}
	}
}

// Purge drops the whole scope, used on logout.
func (c *Cache) Purge(ctx context.Context, scope string) {
	if err := c.store.DeletePrefix(ctx, scope+"|"); err != nil {
		c.log.Warn("cache purge failed", zap.String("scope", scope), zap.Error(err))
	}
}
