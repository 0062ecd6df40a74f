package pricing

import (
	"errors"

	"gitecal/internal/domain/shared/dates"
)

var (
	ErrTooManyGuests = errors.New("pricing: party exceeds the property capacity")
	ErrStayRejected  = errors.New("pricing: stay is not available")
)

// NightPrice is one line of a quote breakdown.
type NightPrice struct {
	Date       dates.Day
	Price      int64 // whole EUR
	PeriodName string
}

// Quote is the full payment breakdown for an accepted stay. Amounts carry
// cent precision because the tourist tax is fractional per person.
type Quote struct {
	Stay               dates.Range
	Nights             int
	Adults             int
	Children           int
	AccommodationCents int64
	TouristTaxCents    int64
	TotalCents         int64
	DepositCents       int64
	BalanceCents       int64
	SecurityDepCents   int64
	Breakdown          []NightPrice
	CheckInTime        string
	CheckOutTime       string
}

// BuildQuote prices an entire stay. The stay must already have passed
// CheckStay; a blocked or too-short stay returns ErrStayRejected so callers
// cannot quote something they may not book.
func (c Calendar) BuildQuote(stay dates.Range, adults, children int) (Quote, error) {
	verdict := c.CheckStay(stay)
	if !verdict.Available {
		return Quote{}, ErrStayRejected
	}
	if adults < 1 {
		adults = 1
	}
	guests := adults + children
	if c.Rules.MaximumGuests > 0 && guests > c.Rules.MaximumGuests {
		return Quote{}, ErrTooManyGuests
	}

	overrideByDay := make(map[dates.Day]DayOverride, len(c.Overrides))
	for _, o := range c.Overrides {
		overrideByDay[o.Date] = o
	}

	nights := stay.Days()
	var accommodation int64
	breakdown := make([]NightPrice, 0, len(nights))
	for _, d := range nights {
		price := c.ResolveNightly(d, overrideByDay)
		accommodation += price.Amount
		breakdown = append(breakdown, NightPrice{
			Date:       d,
			Price:      price.Amount,
			PeriodName: c.NightlyPeriodName(d),
		})
	}

	accommodationCents := accommodation * 100
	taxCents := int64(stay.Nights()) * int64(guests) * c.Rules.TouristTaxPerGuestCent
	totalCents := accommodationCents + taxCents
	depositCents := (totalCents*c.Rules.DepositPercentage*2 + 100) / 200

	return Quote{
		Stay:               stay,
		Nights:             stay.Nights(),
		Adults:             adults,
		Children:           children,
		AccommodationCents: accommodationCents,
		TouristTaxCents:    taxCents,
		TotalCents:         totalCents,
		DepositCents:       depositCents,
		BalanceCents:       totalCents - depositCents,
		SecurityDepCents:   c.Rules.SecurityDeposit.Amount * 100,
		Breakdown:          breakdown,
		CheckInTime:        c.Rules.CheckInTime,
		CheckOutTime:       c.Rules.CheckOutTime,
	}, nil
}

// DedupeOverrides keeps the most recently modified override per date,
// preserving no particular order. Storage may hold stale duplicates; the
// newest write is the logical record.
func DedupeOverrides(overrides []DayOverride) []DayOverride {
	newest := make(map[dates.Day]DayOverride, len(overrides))
	for _, o := range overrides {
		if cur, ok := newest[o.Date]; ok && !o.UpdatedAt.After(cur.UpdatedAt) {
			continue
		}
		newest[o.Date] = o
	}
	out := make([]DayOverride, 0, len(newest))
	for _, o := range newest {
		out = append(out, o)
	}
	return out
}
