package availability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitecal/internal/domain/shared/dates"
)

func window(t *testing.T, from, to string) dates.Range {
	t.Helper()
	r, err := dates.NewRange(day(t, from), day(t, to))
	require.NoError(t, err)
	return r
}

func TestMergeBlocked_Union(t *testing.T) {
	facts := []DayFact{
		{Date: day(t, "2025-07-01"), Available: false},
		{Date: day(t, "2025-07-02"), Available: true},
		{Date: day(t, "2025-07-03"), Available: true},
	}
	events := []Event{
		{Start: day(t, "2025-07-03"), End: day(t, "2025-07-05")},
	}
	blocked := MergeBlocked(facts, events, window(t, "2025-07-01", "2025-07-10"))

	require.True(t, blocked.Has(day(t, "2025-07-01")), "blocked by period source")
	require.False(t, blocked.Has(day(t, "2025-07-02")), "available in both sources")
	require.True(t, blocked.Has(day(t, "2025-07-03")), "feed block wins over period availability")
	require.True(t, blocked.Has(day(t, "2025-07-04")))
	require.False(t, blocked.Has(day(t, "2025-07-05")), "event end is the checkout day")
}

func TestMergeBlocked_WindowRestriction(t *testing.T) {
	facts := []DayFact{
		{Date: day(t, "2025-06-30"), Available: false},
	}
	events := []Event{
		{Start: day(t, "2025-07-09"), End: day(t, "2025-07-12")},
	}
	blocked := MergeBlocked(facts, events, window(t, "2025-07-01", "2025-07-10"))

	require.False(t, blocked.Has(day(t, "2025-06-30")))
	require.True(t, blocked.Has(day(t, "2025-07-09")))
	require.False(t, blocked.Has(day(t, "2025-07-10")))
	require.False(t, blocked.Has(day(t, "2025-07-11")))
}

func TestMergeBlocked_NoEvents(t *testing.T) {
	// feed source unreachable: merger degrades to period-derived blocks only
	facts := []DayFact{
		{Date: day(t, "2025-07-01"), Available: false},
		{Date: day(t, "2025-07-02"), Available: true},
	}
	blocked := MergeBlocked(facts, nil, window(t, "2025-07-01", "2025-07-10"))
	require.Len(t, blocked, 1)
	require.True(t, blocked.Has(day(t, "2025-07-01")))
}
