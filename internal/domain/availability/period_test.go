package availability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitecal/internal/domain/shared/dates"
)

func day(t *testing.T, s string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestExpandPeriods_SingleDayPeriod(t *testing.T) {
	facts, err := ExpandPeriods([]Period{
		{Start: day(t, "2025-07-01"), End: day(t, "2025-07-01"), AvailableCount: 1},
	})
	require.NoError(t, err)
	require.Len(t, facts, 1)
	require.Equal(t, "2025-07-01", facts[0].Date.String())
	require.True(t, facts[0].Available)
}

func TestExpandPeriods_InclusiveBothEnds(t *testing.T) {
	facts, err := ExpandPeriods([]Period{
		{Start: day(t, "2025-07-01"), End: day(t, "2025-07-03"), AvailableCount: 1},
	})
	require.NoError(t, err)
	require.Len(t, facts, 3)
	require.Equal(t, "2025-07-01", facts[0].Date.String())
	require.Equal(t, "2025-07-03", facts[2].Date.String())
}

func TestExpandPeriods_Availability(t *testing.T) {
	cases := []struct {
		name   string
		period Period
		want   bool
	}{
		{"open", Period{AvailableCount: 1}, true},
		{"zero units", Period{AvailableCount: 0}, false},
		{"booked", Period{AvailableCount: 1, HasBookings: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.period.Start = day(t, "2025-07-01")
			tc.period.End = day(t, "2025-07-01")
			facts, err := ExpandPeriods([]Period{tc.period})
			require.NoError(t, err)
			require.Equal(t, tc.want, facts[0].Available)
		})
	}
}

func TestExpandPeriods_SharedBoundaryLaterPeriodWins(t *testing.T) {
	facts, err := ExpandPeriods([]Period{
		{Start: day(t, "2025-07-01"), End: day(t, "2025-07-03"), AvailableCount: 1},
		{Start: day(t, "2025-07-03"), End: day(t, "2025-07-05"), AvailableCount: 0},
	})
	require.NoError(t, err)
	require.Len(t, facts, 5)
	byDate := map[string]bool{}
	for _, f := range facts {
		byDate[f.Date.String()] = f.Available
	}
	require.True(t, byDate["2025-07-02"])
	require.False(t, byDate["2025-07-03"], "the later period owns the shared boundary date")
	require.False(t, byDate["2025-07-04"])
}

func TestExpandPeriods_Malformed(t *testing.T) {
	_, err := ExpandPeriods([]Period{
		{Start: day(t, "2025-07-10"), End: day(t, "2025-07-01"), AvailableCount: 1},
	})
	require.ErrorIs(t, err, ErrMalformedPeriod)
}

func TestExpandPeriods_OrderedOutput(t *testing.T) {
	facts, err := ExpandPeriods([]Period{
		{Start: day(t, "2025-07-05"), End: day(t, "2025-07-06"), AvailableCount: 1},
		{Start: day(t, "2025-07-01"), End: day(t, "2025-07-02"), AvailableCount: 1},
	})
	require.NoError(t, err)
	for i := 1; i < len(facts); i++ {
		require.True(t, facts[i-1].Date.Before(facts[i].Date))
	}
}
