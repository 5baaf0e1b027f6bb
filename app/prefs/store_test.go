package prefs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	allowed := []string{"a", "b", "c"}
	assert.Equal(t, []string{"c", "a", "b"}, SanitizeOrder([]string{"c", "x", "c", "a"}, allowed))
	assert.Equal(t, []string{"b"}, SanitizeHidden([]string{"b", "zz", "b"}, allowed))
	assert.Equal(t, allowed, SanitizeOrder(nil, allowed))
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s := NewStore(NewMemory(), nil)
	l := s.Load(context.Background(), "1", Monthly)
	assert.Equal(t, Monthly.Cards, l.Order)
	assert.Empty(t, l.Hidden)
	assert.Equal(t, Monthly.Cards, l.Visible())
}

func TestLoadCorruptFallsBack(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Set(ctx, "1", Overall.OrderKey, "not json"))
	require.NoError(t, mem.Set(ctx, "1", Overall.HiddenKey, `{"a":1}`))

	l := NewStore(mem, nil).Load(ctx, "1", Overall)
	assert.Equal(t, Overall.Cards, l.Order)
	assert.Empty(t, l.Hidden)

	require.NoError(t, mem.Set(ctx, "1", Overall.OrderKey, "[]"))
	l = NewStore(mem, nil).Load(ctx, "1", Overall)
	assert.Equal(t, Overall.Cards, l.Order)
}

func roundTrip(t *testing.T, backend Backend) {
	ctx := context.Background()
	s := NewStore(backend, nil)

	_, err := s.Move(ctx, "7", Overall, "total_profit", 0)
	require.NoError(t, err)
	_, err = s.Toggle(ctx, "7", Overall, "total_groups")
	require.NoError(t, err)

	l := NewStore(backend, nil).Load(ctx, "7", Overall)
	assert.Equal(t, []string{"total_profit", "total_students", "total_groups", "total_teachers", "total_revenue", "total_expenses"}, l.Order)
	assert.Equal(t, []string{"total_groups"}, l.Hidden)
	assert.NotContains(t, l.Visible(), "total_groups")

	// other users and boards are untouched
	assert.Equal(t, Overall.Cards, s.Load(ctx, "8", Overall).Order)
	assert.Equal(t, Monthly.Cards, s.Load(ctx, "7", Monthly).Order)

	_, err = s.Toggle(ctx, "7", Overall, "total_groups")
	require.NoError(t, err)
	assert.Empty(t, s.Load(ctx, "7", Overall).Hidden)

	require.NoError(t, s.Reset(ctx, "7", Overall))
	assert.Equal(t, Default(Overall), s.Load(ctx, "7", Overall))
}

func TestRoundTripMemory(t *testing.T) {
	roundTrip(t, NewMemory())
}

func TestRoundTripRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	roundTrip(t, NewRedis(rdb, ""))
	assert.True(t, mr.Exists("newlms:prefs:7"))
}

func TestShiftAndUnknownCard(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemory(), nil)

	l, err := s.Shift(ctx, "1", Monthly, "debt", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"revenue", "debt", "expected_revenue"}, l.Order[:3])

	_, err = s.Shift(ctx, "1", Monthly, "revenue", -1)
	require.NoError(t, err)

	_, err = s.Toggle(ctx, "1", Monthly, "nope")
	assert.ErrorIs(t, err, ErrUnknownCard)
}
