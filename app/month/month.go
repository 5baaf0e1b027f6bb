// Package month handles the YYYY-MM values used by every monthly screen.
package month

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const Layout = "2006-01"

// Month is a calendar month without a day.
type Month struct {
	Year  int
	Month time.Month
}

func Parse(s string) (Month, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Month{}, errors.Errorf("month: %q is not YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// ParseOr parses s, returning def when s is empty or malformed.
func ParseOr(s string, def Month) Month {
	if m, err := Parse(s); err == nil {
		return m
	}
	return def
}

func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func Current(loc *time.Location) Month {
	return Of(time.Now().In(loc))
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Add moves n months forward (negative n moves back), rolling the year.
func (m Month) Add(n int) Month {
	idx := m.Year*12 + int(m.Month) - 1 + n
	return Month{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

func (m Month) Next() Month { return m.Add(1) }
func (m Month) Prev() Month { return m.Add(-1) }

func (m Month) Before(o Month) bool {
	return m.Year < o.Year || (m.Year == o.Year && m.Month < o.Month)
}

// Range returns n consecutive months starting at m.
func (m Month) Range(n int) []Month {
	out := make([]Month, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, m.Add(i))
	}
	return out
}

var uzMonths = [...]string{
	"Yanvar", "Fevral", "Mart", "Aprel", "May", "Iyun",
	"Iyul", "Avgust", "Sentabr", "Oktabr", "Noyabr", "Dekabr",
}

// Label is the display form, e.g. "Dekabr 2025".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", uzMonths[m.Month-1], m.Year)
}

// NextOf is the string form used by forms: "2025-12" -> "2026-01".
func NextOf(s string) (string, error) {
	m, err := Parse(s)
	if err != nil {
		return "", err
	}
	return m.Next().String(), nil
}
