package availability

import "gitecal/internal/domain/shared/dates"

// BuildCalendar assembles the per-day calendar for a query window: exactly
// one DayFact per day of the window, in order, no gaps. A day is available
// unless some source blocked it; days the period source never mentioned stay
// open (the blocked set is the single source of truth). Prices from period
// facts are carried over when present.
func BuildCalendar(window dates.Range, facts []DayFact, blocked BlockedSet) []DayFact {
	byDay := make(map[dates.Day]DayFact, len(facts))
	for _, f := range facts {
		byDay[f.Date] = f
	}

	days := window.Days()
	out := make([]DayFact, 0, len(days))
	for _, d := range days {
		fact := DayFact{Date: d, Available: !blocked.Has(d)}
		if src, ok := byDay[d]; ok {
			fact.Price = src.Price
		}
		out = append(out, fact)
	}
	return out
}
