package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRollsOverYear(t *testing.T) {
	next, err := NextOf("2025-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-01", next)

	next, err = NextOf("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", next)
}

func TestAdd(t *testing.T) {
	m := Month{Year: 2025, Month: time.January}
	assert.Equal(t, "2024-12", m.Prev().String())
	assert.Equal(t, "2026-01", m.Add(12).String())
	assert.Equal(t, "2023-11", m.Add(-14).String())
}

func TestParse(t *testing.T) {
	m, err := Parse("2025-07")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: time.July}, m)

	for _, bad := range []string{"", "2025-13", "2025/07", "25-07", "2025-07-01"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOr(t *testing.T) {
	def := Month{Year: 2025, Month: time.May}
	assert.Equal(t, def, ParseOr("garbage", def))
	assert.Equal(t, "2024-02", ParseOr("2024-02", def).String())
}

func TestRangeAndBefore(t *testing.T) {
	got := Month{Year: 2025, Month: time.November}.Range(3)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-01", got[2].String())
	assert.True(t, got[0].Before(got[2]))
	assert.False(t, got[2].Before(got[0]))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Dekabr 2025", Month{Year: 2025, Month: time.December}.Label())
}
