package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned for any period selector other than daily, weekly or monthly.
var ErrInvalidPeriod = errors.New("invalid period")

// Period selects the bucket granularity of a report.
type Period int

// Supported report granularities.
const (
	// Daily buckets by calendar date.
	Daily Period = iota + 1
	// Weekly buckets by ISO-8601 week.
	Weekly
	// Monthly buckets by calendar month.
	Monthly
)

// Parse maps a selector to a Period. Both the English names and the
// route values of the dashboard (diario, semanal, mensual) are accepted.
func Parse(value string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "daily", "diario":
		return Daily, nil
	case "weekly", "semanal":
		return Weekly, nil
	case "monthly", "mensual":
		return Monthly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
	}
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	return p == Daily || p == Weekly || p == Monthly
}

// String returns the English name of p.
func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// Key identifies one bucket. It is comparable and safe to use as a map key.
type Key struct {
	period Period
	year   int
	month  time.Month
	day    int
	week   int
}

// KeyOf resolves the bucket a timestamp falls into. Dates are read in t's own location.
func (p Period) KeyOf(t time.Time) (Key, error) {
	switch p {
	case Daily:
		y, m, d := t.Date()
		return Key{period: p, year: y, month: m, day: d}, nil
	case Weekly:
		// ISO-8601: weeks start on Monday and week 1 holds the year's first Thursday.
		y, w := t.ISOWeek()
		return Key{period: p, year: y, week: w}, nil
	case Monthly:
		y, m, _ := t.Date()
		return Key{period: p, year: y, month: m}, nil
	default:
		return Key{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, p)
	}
}

// Period returns the granularity the key was resolved for.
func (k Key) Period() Period {
	return k.period
}

// Year is the calendar year, or the ISO week-numbering year for weekly keys.
func (k Key) Year() int {
	return k.year
}

// Week is the ISO week number; zero for non-weekly keys.
func (k Key) Week() int {
	return k.week
}

// Label renders the key for display. Weekly labels omit the year.
func (k Key) Label() string {
	switch k.period {
	case Daily:
		return fmt.Sprintf("%04d-%02d-%02d", k.year, int(k.month), k.day)
	case Weekly:
		return fmt.Sprintf("Week %d", k.week)
	case Monthly:
		return fmt.Sprintf("%04d-%02d", k.year, int(k.month))
	default:
		return ""
	}
}
