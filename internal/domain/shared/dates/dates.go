package dates

import (
	"errors"
	"time"
)

var (
	ErrInvalidDay   = errors.New("dates: day must be formatted as YYYY-MM-DD")
	ErrInvalidRange = errors.New("dates: checkout must be after checkin")
)

// Layout is the only accepted textual form of a day.
const Layout = "2006-01-02"

// Day is a pure calendar date. It carries no clock and no zone; two days are
// equal iff they print the same YYYY-MM-DD string.
type Day struct {
	t time.Time
}

// ParseDay parses a strict YYYY-MM-DD string. Partial or ambiguous inputs
// are rejected rather than guessed at.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Day{}, ErrInvalidDay
	}
	return Day{t: t.UTC()}, nil
}

// MustDay parses s and panics on failure; for tests and fixtures.
func MustDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DayOf truncates a timestamp to its UTC calendar date.
func DayOf(t time.Time) Day {
	t = t.UTC()
	return Day{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Day) IsZero() bool        { return d.t.IsZero() }
func (d Day) String() string      { return d.t.Format(Layout) }
func (d Day) Equal(o Day) bool    { return d.t.Equal(o.t) }
func (d Day) Before(o Day) bool   { return d.t.Before(o.t) }
func (d Day) After(o Day) bool    { return d.t.After(o.t) }
func (d Day) AddDays(n int) Day   { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) Next() Day           { return d.AddDays(1) }
func (d Day) DaysUntil(o Day) int { return int(o.t.Sub(d.t) / (24 * time.Hour)) }

// Range is a half-open day interval [From, To): To is the checkout day and
// never belongs to the range.
type Range struct {
	From Day
	To   Day
}

// NewRange validates the half-open invariant.
func NewRange(from, to Day) (Range, error) {
	r := Range{From: from, To: to}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return ErrInvalidRange
	}
	if !r.To.After(r.From) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is the number of nights spent inside the range.
func (r Range) Nights() int {
	return r.From.DaysUntil(r.To)
}

// Contains reports whether d falls inside [From, To).
func (r Range) Contains(d Day) bool {
	return !d.Before(r.From) && d.Before(r.To)
}

// Days lists every day of the range in chronological order.
func (r Range) Days() []Day {
	n := r.Nights()
	if n <= 0 {
		return nil
	}
	out := make([]Day, 0, n)
	for d := r.From; d.Before(r.To); d = d.Next() {
		out = append(out, d)
	}
	return out
}

func (r Range) Overlaps(other Range) bool {
	return r.From.Before(other.To) && other.From.Before(r.To)
}
