package cache

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lesson struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
}

func TestKeyIsStableAcrossParamOrder(t *testing.T) {
	a := url.Values{}
	a.Set("month", "2025-12")
	a.Set("group_id", "4")
	b := url.Values{}
	b.Set("group_id", "4")
	b.Set("month", "2025-12")

	assert.Equal(t, Key("u1", "/api/snapshots", a), Key("u1", "/api/snapshots", b))
	assert.Equal(t, "u1|/api/subjects", Key("u1", "/api/subjects", nil))
}

func TestQueryCachesPerScope(t *testing.T) {
	c := New(NewMemory(), time.Minute, nil)
	var loads int32
	load := func(context.Context) ([]lesson, error) {
		atomic.AddInt32(&loads, 1)
		return []lesson{{ID: 1, Date: "2025-12-01"}}, nil
	}

	ctx := WithScope(context.Background(), "u1")
	params := url.Values{"month": {"2025-12"}}

	first, err := Query(ctx, c, "/api/attendance/groups/1/lessons", params, load)
	require.NoError(t, err)
	second, err := Query(ctx, c, "/api/attendance/groups/1/lessons", params, load)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	other := WithScope(context.Background(), "u2")
	_, err = Query(other, c, "/api/attendance/groups/1/lessons", params, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads), "scopes do not share entries")
}

func TestQueryDoesNotCacheErrors(t *testing.T) {
	c := New(NewMemory(), time.Minute, nil)
	ctx := WithScope(context.Background(), "u1")
	boom := errors.New("boom")

	_, err := Query(ctx, c, "/api/subjects", nil, func(context.Context) ([]int, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	v, err := Query(ctx, c, "/api/subjects", nil, func(context.Context) ([]int, error) { return []int{1}, nil })
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
}

func TestQueryCollapsesConcurrentLoads(t *testing.T) {
	c := New(NewMemory(), time.Minute, nil)
	ctx := WithScope(context.Background(), "u1")
	release := make(chan struct{})
	var loads int32

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Query(ctx, c, "/api/groups", nil, func(context.Context) (int, error) {
				atomic.AddInt32(&loads, 1)
				<-release
				return 42, nil
			})
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&loads), int32(2))
}

func TestLoadOutlivesCancelledCaller(t *testing.T) {
	c := New(NewMemory(), time.Minute, nil)
	ctx, cancel := context.WithCancel(WithScope(context.Background(), "u1"))
	var loads int32
	load := func(lctx context.Context) (string, error) {
		atomic.AddInt32(&loads, 1)
		cancel()
		if err := lctx.Err(); err != nil {
			return "", err
		}
		return ScopeFrom(lctx), nil
	}

	v, err := Query(ctx, c, "/api/groups", nil, load)
	require.NoError(t, err)
	assert.Equal(t, "u1", v, "scope survives on the shared context")

	v, err = Query(WithScope(context.Background(), "u1"), c, "/api/groups", nil, load)
	require.NoError(t, err)
	assert.Equal(t, "u1", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads), "the result was cached for the next caller")
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(NewMemory(), time.Minute, nil)
	ctx := WithScope(context.Background(), "u1")
	var loads int32
	load := func(context.Context) (int, error) { return int(atomic.AddInt32(&loads, 1)), nil }

	_, _ = Query(ctx, c, "/api/snapshots", url.Values{"month": {"2025-11"}}, load)
	_, _ = Query(ctx, c, "/api/snapshots", url.Values{"month": {"2025-12"}}, load)
	_, _ = Query(ctx, c, "/api/subjects", nil, load)
	require.Equal(t, int32(3), loads)

	c.Invalidate(ctx, "/api/snapshots")

	_, _ = Query(ctx, c, "/api/subjects", nil, load)
	assert.Equal(t, int32(3), atomic.LoadInt32(&loads), "unrelated keys survive")
	_, _ = Query(ctx, c, "/api/snapshots", url.Values{"month": {"2025-12"}}, load)
	assert.Equal(t, int32(4), atomic.LoadInt32(&loads))
}

func TestMemoryExpiryAndSweep(t *testing.T) {
	m := NewMemory()
	now := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Second))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	now = now.Add(2 * time.Second)
	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedis(rdb, "test:")
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1|/api/snapshots?month=2025-12", []byte(`[1]`), time.Minute))
	require.NoError(t, s.Set(ctx, "u1|/api/subjects", []byte(`[2]`), time.Minute))
	require.NoError(t, s.Set(ctx, "u2|/api/snapshots?month=2025-12", []byte(`[3]`), time.Minute))

	v, ok, err := s.Get(ctx, "u1|/api/subjects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[2]`), v)

	require.NoError(t, s.DeletePrefix(ctx, "u1|/api/snapshots"))
	_, ok, _ = s.Get(ctx, "u1|/api/snapshots?month=2025-12")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "u2|/api/snapshots?month=2025-12")
	assert.True(t, ok)

	_, ok, err = s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `u1|/api/x\?a=\[1\]`, escapeGlob("u1|/api/x?a=[1]"))
}
