package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitecal/internal/domain/shared/dates"
)

func TestBuildQuote_Breakdown(t *testing.T) {
	cal := Calendar{
		Periods: []PricingPeriod{activePeriod("summer", "2025-07-01", "2025-07-10", 140, 2)},
		Rules:   DefaultRules(),
	}
	q, err := cal.BuildQuote(stay(t, "2025-07-01", "2025-07-04"), 2, 1)
	require.NoError(t, err)

	require.Equal(t, 3, q.Nights)
	require.Equal(t, int64(42000), q.AccommodationCents)
	// 3 nights x 3 guests x 1.50
	require.Equal(t, int64(1350), q.TouristTaxCents)
	require.Equal(t, int64(43350), q.TotalCents)
	// 30% deposit, rounded to the cent
	require.Equal(t, int64(13005), q.DepositCents)
	require.Equal(t, q.TotalCents, q.DepositCents+q.BalanceCents)
	require.Equal(t, int64(30000), q.SecurityDepCents)

	require.Len(t, q.Breakdown, 3)
	require.Equal(t, "2025-07-01", q.Breakdown[0].Date.String())
	require.Equal(t, int64(140), q.Breakdown[0].Price)
	require.Equal(t, "summer", q.Breakdown[0].PeriodName)
}

func TestBuildQuote_RejectsBlockedStay(t *testing.T) {
	cal := Calendar{
		Overrides: []DayOverride{{Date: dates.MustDay("2025-07-02"), IsAvailable: false}},
		Rules:     DefaultRules(),
	}
	_, err := cal.BuildQuote(stay(t, "2025-07-01", "2025-07-04"), 2, 0)
	require.ErrorIs(t, err, ErrStayRejected)
}

func TestBuildQuote_RejectsOversizedParty(t *testing.T) {
	cal := Calendar{Rules: DefaultRules()}
	_, err := cal.BuildQuote(stay(t, "2025-07-01", "2025-07-04"), 5, 3)
	require.ErrorIs(t, err, ErrTooManyGuests)
}

func TestBuildQuote_DefaultPricing(t *testing.T) {
	cal := Calendar{Rules: DefaultRules()}
	q, err := cal.BuildQuote(stay(t, "2025-07-01", "2025-07-03"), 2, 0)
	require.NoError(t, err)
	require.Equal(t, int64(30000), q.AccommodationCents)
	require.Empty(t, q.Breakdown[0].PeriodName)
}
