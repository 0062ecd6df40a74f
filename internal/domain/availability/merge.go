package availability

import "gitecal/internal/domain/shared/dates"

// Event is a booked span from the independent calendar feed. End is the
// checkout day and is not itself occupied.
type Event struct {
	Start dates.Day
	End   dates.Day
}

// Covers reports whether d falls inside [Start, End).
func (e Event) Covers(d dates.Day) bool {
	return !d.Before(e.Start) && d.Before(e.End)
}

// BlockedSet is a set of blocked calendar days.
type BlockedSet map[dates.Day]struct{}

func (s BlockedSet) Has(d dates.Day) bool {
	_, ok := s[d]
	return ok
}

// MergeBlocked unions the dates blocked by the period source with the dates
// covered by feed events, restricted to the query window. A date blocked by
// either source stays blocked; availability never overrides a block.
func MergeBlocked(facts []DayFact, events []Event, window dates.Range) BlockedSet {
	blocked := make(BlockedSet)
	for _, f := range facts {
		if !f.Available && window.Contains(f.Date) {
			blocked[f.Date] = struct{}{}
		}
	}
	for _, ev := range events {
		for d := ev.Start; d.Before(ev.End); d = d.Next() {
			if window.Contains(d) {
				blocked[d] = struct{}{}
			}
		}
	}
	return blocked
}
