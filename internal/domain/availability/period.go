package availability

import (
	"errors"
	"fmt"

	"gitecal/internal/domain/shared/dates"
	"gitecal/internal/domain/shared/money"
)

var ErrMalformedPeriod = errors.New("availability: period ends before it starts")

// Period is a coarse availability span as reported by the booking system.
// Start and End are both inclusive; Start == End denotes a single day.
// Adjacent periods share their boundary date upstream.
type Period struct {
	Start          dates.Day
	End            dates.Day
	AvailableCount int
	HasBookings    bool
}

// Open reports whether the period leaves the property bookable: at least one
// unit free and no booking attached.
func (p Period) Open() bool {
	return p.AvailableCount > 0 && !p.HasBookings
}

// DayFact is the atomic availability record: one verdict per calendar day.
// At most one DayFact per date exists in any processed sequence.
type DayFact struct {
	Date      dates.Day
	Available bool
	Price     *money.Money
}

// ExpandPeriods flattens period records into one DayFact per day they span,
// both endpoints included. When two periods claim the same date the
// later-listed period wins. Output is ordered by date.
func ExpandPeriods(periods []Period) ([]DayFact, error) {
	byDate := make(map[dates.Day]bool, len(periods))
	order := make([]dates.Day, 0, len(periods))
	for _, p := range periods {
		if p.End.Before(p.Start) {
			return nil, fmt.Errorf("%w: %s > %s", ErrMalformedPeriod, p.Start, p.End)
		}
		open := p.Open()
		for d := p.Start; !d.After(p.End); d = d.Next() {
			if _, seen := byDate[d]; !seen {
				order = append(order, d)
			}
			byDate[d] = open
		}
	}

	sortDays(order)
	facts := make([]DayFact, 0, len(order))
	for _, d := range order {
		facts = append(facts, DayFact{Date: d, Available: byDate[d]})
	}
	return facts, nil
}

func sortDays(days []dates.Day) {
	// insertion sort: expanded periods arrive nearly ordered
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j].Before(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
}
