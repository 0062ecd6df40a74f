package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerNight_Rounding(t *testing.T) {
	cases := []struct {
		total  int64
		nights int
		want   int64
	}{
		{450, 3, 150},
		{440, 3, 147}, // 146.67 rounds up
		{430, 3, 143}, // 143.33 rounds down
		{301, 2, 151}, // halves round up
		{0, 3, 0},
		{100, 0, 0},
	}
	for _, tc := range cases {
		got := EUR(tc.total).PerNight(tc.nights)
		require.Equal(t, tc.want, got.Amount, "total %d over %d nights", tc.total, tc.nights)
		require.Equal(t, DefaultCurrency, got.Currency)
	}
}

func TestPercent(t *testing.T) {
	require.Equal(t, int64(45), EUR(150).Percent(30).Amount)
	require.Equal(t, int64(50), EUR(99).Percent(50).Amount) // 49.5 rounds up
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	_, err := EUR(10).Add(Must(10, "USD"))
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(10, "EURO")
	require.ErrorIs(t, err, ErrInvalidCurrency)

	m, err := New(10, "eur")
	require.NoError(t, err)
	require.Equal(t, "EUR", m.Currency)
}
