package dto

import (
	"gitecal/internal/domain/availability"
	"gitecal/internal/domain/shared/dates"
)

type CalendarDay struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Price     *int64 `json:"price,omitempty"`
}

type Calendar struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Days []CalendarDay `json:"days"`
	// Degraded is set when the feed source was unreachable and the
	// calendar reflects the booking system alone.
	Degraded bool `json:"degraded,omitempty"`
}

func MapCalendar(window dates.Range, facts []availability.DayFact, degraded bool) Calendar {
	days := make([]CalendarDay, 0, len(facts))
	for _, f := range facts {
		d := CalendarDay{Date: f.Date.String(), Available: f.Available}
		if f.Price != nil {
			amount := f.Price.Amount
			d.Price = &amount
		}
		days = append(days, d)
	}
	return Calendar{
		From:     window.From.String(),
		To:       window.To.String(),
		Days:     days,
		Degraded: degraded,
	}
}
