package pricing

import (
	"fmt"
	"strings"

	"gitecal/internal/domain/shared/dates"
	"gitecal/internal/domain/shared/money"
)

// Verdict is the outcome of a stay query.
type Verdict struct {
	Available     bool
	Reason        string
	MinimumNights int
	PricePerNight money.Money
	TotalNights   int
	TotalPrice    money.Money
	BlockedDays   []dates.Day
}

// Calendar is everything the resolver needs to judge a stay, fetched as an
// immutable snapshot. Overrides hold at most one entry per date.
type Calendar struct {
	Overrides     []DayOverride
	Periods       []PricingPeriod
	BlockedRanges []BlockedRange
	Rules         Rules
}

// CheckStay resolves a stay query against the calendar snapshot. Only the
// nights [checkIn, checkOut) are examined; the checkout day is a transition
// day and is never charged nor checked.
func (c Calendar) CheckStay(stay dates.Range) Verdict {
	if err := stay.Validate(); err != nil {
		return Verdict{Available: false, Reason: "checkout must be after checkin"}
	}

	overrideByDay := make(map[dates.Day]DayOverride, len(c.Overrides))
	for _, o := range c.Overrides {
		overrideByDay[o.Date] = o
	}

	nights := stay.Days()

	// day overrides win over every range-level source
	var blockedDays []dates.Day
	for _, d := range nights {
		if o, ok := overrideByDay[d]; ok {
			if !o.IsAvailable {
				blockedDays = append(blockedDays, d)
			}
			continue
		}
		for _, b := range c.BlockedRanges {
			if b.Contains(d) {
				blockedDays = append(blockedDays, d)
				break
			}
		}
	}
	if len(blockedDays) > 0 {
		return Verdict{
			Available:   false,
			Reason:      "not available: " + renderRuns(GroupRuns(blockedDays)),
			BlockedDays: blockedDays,
		}
	}

	applicable := c.applicablePeriods(stay)
	for _, p := range applicable {
		if !p.IsAvailable {
			return Verdict{Available: false, Reason: "this period is closed to booking"}
		}
	}

	minNights := c.Rules.DefaultMinimumNights
	for _, p := range applicable {
		if p.MinimumNights > minNights {
			minNights = p.MinimumNights
		}
	}
	for _, d := range nights {
		if o, ok := overrideByDay[d]; ok && o.MinimumNights != nil && *o.MinimumNights > minNights {
			minNights = *o.MinimumNights
		}
	}

	if stay.Nights() < minNights {
		plural := ""
		if minNights > 1 {
			plural = "s"
		}
		return Verdict{
			Available:     false,
			Reason:        fmt.Sprintf("minimum stay of %d night%s required for this period", minNights, plural),
			MinimumNights: minNights,
		}
	}

	total := money.EUR(0)
	for _, d := range nights {
		total, _ = total.Add(c.ResolveNightly(d, overrideByDay))
	}

	return Verdict{
		Available:     true,
		MinimumNights: minNights,
		PricePerNight: total.PerNight(stay.Nights()),
		TotalNights:   stay.Nights(),
		TotalPrice:    total,
	}
}

// ResolveNightly returns the price of one night: day override first, then
// the most specific active period covering it, then the default tariff.
func (c Calendar) ResolveNightly(d dates.Day, overrideByDay map[dates.Day]DayOverride) money.Money {
	if overrideByDay == nil {
		overrideByDay = make(map[dates.Day]DayOverride, len(c.Overrides))
		for _, o := range c.Overrides {
			overrideByDay[o.Date] = o
		}
	}
	if o, ok := overrideByDay[d]; ok && o.PricePerNight != nil {
		return *o.PricePerNight
	}
	if p, ok := c.periodFor(d); ok {
		return p.PricePerNight
	}
	return c.Rules.DefaultPricePerNight
}

// NightlyPeriodName reports the tariff period a night falls into, for quote
// breakdowns.
func (c Calendar) NightlyPeriodName(d dates.Day) string {
	if p, ok := c.periodFor(d); ok {
		return p.Name
	}
	return ""
}

// periodFor picks the active period covering d. Overlaps are resolved
// deterministically: the shortest span wins, earliest start breaks ties.
func (c Calendar) periodFor(d dates.Day) (PricingPeriod, bool) {
	var best PricingPeriod
	found := false
	for _, p := range c.Periods {
		if !p.IsActive || !p.Contains(d) {
			continue
		}
		if !found || p.Span() < best.Span() ||
			(p.Span() == best.Span() && p.Start.Before(best.Start)) {
			best = p
			found = true
		}
	}
	return best, found
}

// applicablePeriods lists active periods covering at least one night of the
// stay.
func (c Calendar) applicablePeriods(stay dates.Range) []PricingPeriod {
	var out []PricingPeriod
	for _, p := range c.Periods {
		if !p.IsActive {
			continue
		}
		// inclusive period vs half-open stay
		if !p.End.Before(stay.From) && p.Start.Before(stay.To) {
			out = append(out, p)
		}
	}
	return out
}

// DayRun is a maximal run of consecutive calendar days.
type DayRun struct {
	Start dates.Day
	End   dates.Day
}

// GroupRuns folds chronologically ordered days into contiguous runs: a day
// extends the current run when it is exactly one day after the run's end.
func GroupRuns(days []dates.Day) []DayRun {
	if len(days) == 0 {
		return nil
	}
	runs := []DayRun{{Start: days[0], End: days[0]}}
	for _, d := range days[1:] {
		last := &runs[len(runs)-1]
		if d.Equal(last.End.Next()) {
			last.End = d
			continue
		}
		runs = append(runs, DayRun{Start: d, End: d})
	}
	return runs
}

func renderRuns(runs []DayRun) string {
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		if r.Start.Equal(r.End) {
			parts = append(parts, r.Start.String())
			continue
		}
		parts = append(parts, fmt.Sprintf("%s to %s", r.Start, r.End))
	}
	return strings.Join(parts, ", ")
}
