package dto

import "gitecal/internal/domain/pricing"

type QuoteNight struct {
	Date       string `json:"date"`
	Price      int64  `json:"price"`
	PeriodName string `json:"periodName,omitempty"`
}

type QuoteGuests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Total    int `json:"total"`
}

type QuotePricing struct {
	AccommodationCents int64 `json:"accommodation_cents"`
	TouristTaxCents    int64 `json:"tourist_tax_cents"`
	TotalCents         int64 `json:"total_cents"`
	DepositCents       int64 `json:"deposit_cents"`
	BalanceCents       int64 `json:"balance_cents"`
	SecurityDepCents   int64 `json:"security_deposit_cents"`
}

type Quote struct {
	Arrival   string       `json:"arrival"`
	Departure string       `json:"departure"`
	Nights    int          `json:"nights"`
	Guests    QuoteGuests  `json:"guests"`
	Pricing   QuotePricing `json:"pricing"`
	Breakdown []QuoteNight `json:"nightsBreakdown"`
	CheckIn   string       `json:"checkIn"`
	CheckOut  string       `json:"checkOut"`
}

func MapQuote(q pricing.Quote) Quote {
	breakdown := make([]QuoteNight, 0, len(q.Breakdown))
	for _, n := range q.Breakdown {
		breakdown = append(breakdown, QuoteNight{
			Date:       n.Date.String(),
			Price:      n.Price,
			PeriodName: n.PeriodName,
		})
	}
	return Quote{
		Arrival:   q.Stay.From.String(),
		Departure: q.Stay.To.String(),
		Nights:    q.Nights,
		Guests: QuoteGuests{
			Adults:   q.Adults,
			Children: q.Children,
			Total:    q.Adults + q.Children,
		},
		Pricing: QuotePricing{
			AccommodationCents: q.AccommodationCents,
			TouristTaxCents:    q.TouristTaxCents,
			TotalCents:         q.TotalCents,
			DepositCents:       q.DepositCents,
			BalanceCents:       q.BalanceCents,
			SecurityDepCents:   q.SecurityDepCents,
		},
		Breakdown: breakdown,
		CheckIn:   q.CheckInTime,
		CheckOut:  q.CheckOutTime,
	}
}
