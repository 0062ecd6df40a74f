package money

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

// DefaultCurrency is the currency every tariff in the system is quoted in.
const DefaultCurrency = "EUR"

// Money keeps amounts in whole currency units (nightly tariffs are whole
// euros upstream) to avoid floating point issues.
type Money struct {
	Amount   int64
	Currency string
}

// New constructs a Money value validating minimal invariants.
func New(amount int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	currency = strings.ToUpper(currency)
	return Money{Amount: amount, Currency: currency}, nil
}

// Must creates Money and panics if validation fails; useful in tests and fixtures.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// EUR builds a euro amount.
func EUR(amount int64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

// Add adds two money values ensuring currencies match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Multiply multiplies the amount by the provided factor.
func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount * times, Currency: m.Currency}
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// PerNight returns the mean nightly amount rounded to the nearest whole
// unit, halves away from zero.
func (m Money) PerNight(nights int) Money {
	if nights <= 0 {
		return Money{Amount: 0, Currency: m.Currency}
	}
	n := int64(nights)
	rounded := (2*m.Amount + n) / (2 * n)
	return Money{Amount: rounded, Currency: m.Currency}
}

// Percent returns pct% of the amount rounded to the nearest whole unit.
func (m Money) Percent(pct int64) Money {
	return Money{Amount: (m.Amount*pct*2 + 100) / 200, Currency: m.Currency}
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}
