package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
	"gitecal/internal/domain/shared/money"
)

type mockPeriodRepo struct {
	periodsFn func(ctx context.Context, window dates.Range) ([]domainpricing.PricingPeriod, error)
}

func (m *mockPeriodRepo) Periods(ctx context.Context, window dates.Range) ([]domainpricing.PricingPeriod, error) {
	if m.periodsFn == nil {
		return nil, nil
	}
	return m.periodsFn(ctx, window)
}

func TestCheckStay_EndToEnd(t *testing.T) {
	// 3 nights inside a 140-a-night period with a 2 night minimum
	h := &CheckStayHandler{
		Periods: &mockPeriodRepo{periodsFn: func(ctx context.Context, w dates.Range) ([]domainpricing.PricingPeriod, error) {
			return []domainpricing.PricingPeriod{{
				ID:            "p1",
				Name:          "summer",
				Start:         dates.MustDay("2025-07-01"),
				End:           dates.MustDay("2025-07-10"),
				PricePerNight: money.EUR(140),
				MinimumNights: 2,
				IsAvailable:   true,
				IsActive:      true,
			}}, nil
		}},
	}

	v, err := h.Handle(context.Background(), CheckStayQuery{
		CheckIn:  dates.MustDay("2025-07-01"),
		CheckOut: dates.MustDay("2025-07-04"),
	})
	require.NoError(t, err)
	require.True(t, v.Available)
	require.NotNil(t, v.MinimumNights)
	require.Equal(t, 2, *v.MinimumNights)
	require.Equal(t, int64(140), *v.PricePerNight)
	require.Equal(t, 3, *v.TotalNights)
	require.Equal(t, int64(420), *v.TotalPrice)
}

func TestCheckStay_BackwardsRangeIsVerdictNotError(t *testing.T) {
	h := &CheckStayHandler{}
	v, err := h.Handle(context.Background(), CheckStayQuery{
		CheckIn:  dates.MustDay("2025-07-04"),
		CheckOut: dates.MustDay("2025-07-01"),
	})
	require.NoError(t, err)
	require.False(t, v.Available)
	require.NotEmpty(t, v.Reason)
}

func TestCheckStay_BlockedDatesInVerdict(t *testing.T) {
	h := &CheckStayHandler{
		Overrides: &mockOverrideRepo{overridesFn: func(ctx context.Context, w dates.Range) ([]domainpricing.DayOverride, error) {
			return []domainpricing.DayOverride{
				{Date: dates.MustDay("2025-06-10"), IsAvailable: false},
				{Date: dates.MustDay("2025-06-11"), IsAvailable: false},
				{Date: dates.MustDay("2025-06-15"), IsAvailable: false},
			}, nil
		}},
	}
	v, err := h.Handle(context.Background(), CheckStayQuery{
		CheckIn:  dates.MustDay("2025-06-09"),
		CheckOut: dates.MustDay("2025-06-17"),
	})
	require.NoError(t, err)
	require.False(t, v.Available)
	require.Contains(t, v.Reason, "2025-06-10 to 2025-06-11")
	require.Contains(t, v.Reason, "2025-06-15")
	require.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-15"}, v.UnavailableDates)
}
