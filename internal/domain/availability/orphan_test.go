package availability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func factRow(t *testing.T, startDay string, avail []bool) []DayFact {
	t.Helper()
	start := day(t, startDay)
	out := make([]DayFact, len(avail))
	for i, a := range avail {
		out[i] = DayFact{Date: start.AddDays(i), Available: a}
	}
	return out
}

func availRow(facts []DayFact) []bool {
	out := make([]bool, len(facts))
	for i, f := range facts {
		out[i] = f.Available
	}
	return out
}

func TestFilterOrphans_MinimumTwoNights(t *testing.T) {
	// isolated open days get blocked, the adjacent pair survives
	in := factRow(t, "2025-07-01", []bool{true, false, true, false, true, true, false})
	out := FilterOrphans(in, 2)
	require.Equal(t, []bool{false, false, false, false, true, true, false}, availRow(out))
}

func TestFilterOrphans_Idempotent(t *testing.T) {
	cases := [][]bool{
		{true, false, true, false, true, true, false},
		{true, true, true},
		{false, false},
		{true},
		{true, true, false, true, true, true, false, true},
	}
	for _, avail := range cases {
		for _, k := range []int{2, 3} {
			once := FilterOrphans(factRow(t, "2025-07-01", avail), k)
			twice := FilterOrphans(once, k)
			require.Equal(t, availRow(once), availRow(twice))
		}
	}
}

func TestFilterOrphans_WindowBoundary(t *testing.T) {
	// the first day has no visible left neighbor; its right-side run decides
	in := factRow(t, "2025-07-01", []bool{true, true, false})
	out := FilterOrphans(in, 2)
	require.Equal(t, []bool{true, true, false}, availRow(out))

	in = factRow(t, "2025-07-01", []bool{true, false, false})
	out = FilterOrphans(in, 2)
	require.Equal(t, []bool{false, false, false}, availRow(out))
}

func TestFilterOrphans_LongerMinimumStay(t *testing.T) {
	in := factRow(t, "2025-07-01", []bool{true, true, false, true, true, true})
	out := FilterOrphans(in, 3)
	require.Equal(t, []bool{false, false, false, true, true, true}, availRow(out))
}

func TestFilterOrphans_NoMinimum(t *testing.T) {
	in := factRow(t, "2025-07-01", []bool{true, false, true})
	out := FilterOrphans(in, 1)
	require.Equal(t, []bool{true, false, true}, availRow(out))
}

func TestFilterOrphans_InputUntouched(t *testing.T) {
	in := factRow(t, "2025-07-01", []bool{true, false, true})
	_ = FilterOrphans(in, 2)
	require.True(t, in[0].Available, "filter must not mutate its input")
}

func TestFilterOrphans_DatesPreserved(t *testing.T) {
	in := factRow(t, "2025-07-01", []bool{true, false, true, true})
	out := FilterOrphans(in, 2)
	require.Len(t, out, len(in))
	for i := range in {
		require.True(t, out[i].Date.Equal(in[i].Date))
	}
}
