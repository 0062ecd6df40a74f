package pricing

import (
	"context"
	"time"

	"gitecal/internal/domain/shared/dates"
	"gitecal/internal/domain/shared/money"
)

// DayOverride is an admin-placed day-level record. It beats every other
// pricing or availability source for its date. Exactly one logical override
// exists per date; when storage holds duplicates the most recently modified
// one wins.
type DayOverride struct {
	ID             string
	Date           dates.Day
	PricePerNight  *money.Money
	MinimumNights  *int
	IsAvailable    bool
	BlockReason    string
	Comment        string
	HighlightColor string
	UpdatedAt      time.Time
}

// PricingPeriod is a named tariff span. Start and End are both inclusive.
type PricingPeriod struct {
	ID            string
	Name          string
	Start         dates.Day
	End           dates.Day
	PricePerNight money.Money
	MinimumNights int
	IsAvailable   bool
	IsActive      bool
}

// Contains reports whether the period's inclusive range covers d.
func (p PricingPeriod) Contains(d dates.Day) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Span is the period length in days; shorter means more specific.
func (p PricingPeriod) Span() int {
	return p.Start.DaysUntil(p.End) + 1
}

// BlockedRange is a legacy admin block: an inclusive span of closed days.
type BlockedRange struct {
	ID       string
	Start    dates.Day
	End      dates.Day
	Reason   string
	Comment  string
	IsActive bool
}

func (b BlockedRange) Contains(d dates.Day) bool {
	return b.IsActive && !d.Before(b.Start) && !d.After(b.End)
}

// Rules are the property-wide defaults applied when no override or period
// matches a night.
type Rules struct {
	DefaultPricePerNight   money.Money
	DefaultMinimumNights   int
	MaximumGuests          int
	DepositPercentage      int64
	SecurityDeposit        money.Money
	TouristTaxPerGuestCent int64 // tourist tax per person per night, in cents
	CheckInTime            string
	CheckOutTime           string
}

// DefaultRules mirror the property's standing tariff.
func DefaultRules() Rules {
	return Rules{
		DefaultPricePerNight:   money.EUR(150),
		DefaultMinimumNights:   2,
		MaximumGuests:          6,
		DepositPercentage:      30,
		SecurityDeposit:        money.EUR(300),
		TouristTaxPerGuestCent: 150,
		CheckInTime:            "16:00",
		CheckOutTime:           "10:00",
	}
}

// OverrideRepository fetches day overrides intersecting a window. The
// returned set holds at most one override per date (last write wins).
type OverrideRepository interface {
	Overrides(ctx context.Context, window dates.Range) ([]DayOverride, error)
	Upsert(ctx context.Context, overrides []DayOverride) error
	Delete(ctx context.Context, days []dates.Day) error
}

// PeriodRepository fetches pricing periods intersecting a window.
type PeriodRepository interface {
	Periods(ctx context.Context, window dates.Range) ([]PricingPeriod, error)
}

// BlockedRangeRepository fetches legacy blocked spans intersecting a window.
type BlockedRangeRepository interface {
	BlockedRanges(ctx context.Context, window dates.Range) ([]BlockedRange, error)
}

// RulesRepository fetches the singleton defaults; a missing document falls
// back to DefaultRules.
type RulesRepository interface {
	Rules(ctx context.Context) (Rules, error)
}
