package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "1 250 000 so'm", Money(1250000))
	assert.Equal(t, "0 so'm", Money(0))
	assert.Equal(t, "999 so'm", Money(999.4))
	assert.Equal(t, "-50 000", Number(-50000))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05.12.2025", Date("2025-12-05"))
	assert.Equal(t, "05.12.2025", Date("2025-12-05T09:30:00Z"))
	assert.Equal(t, "ertaga", Date("ertaga"))
}

func TestMarkdownEscapesRawHTML(t *testing.T) {
	out := string(Markdown("**apple** - olma\n<script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>apple</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestPct(t *testing.T) {
	pct := Funcs()["pct"].(func(float64) string)
	assert.Equal(t, "87.5%", pct(87.5))
	assert.Equal(t, "40%", pct(40))
	assert.True(t, strings.HasSuffix(pct(0), "%"))
}

func TestDict(t *testing.T) {
	m, err := dict("kind", "pdfs", "files", []int{1})
	assert.NoError(t, err)
	assert.Equal(t, "pdfs", m["kind"])

	_, err = dict("kind")
	assert.Error(t, err)
	_, err = dict(1, "x")
	assert.Error(t, err)
}
