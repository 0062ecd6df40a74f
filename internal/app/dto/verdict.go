package dto

import "gitecal/internal/domain/pricing"

type Verdict struct {
	Available        bool     `json:"available"`
	Reason           string   `json:"reason,omitempty"`
	MinimumNights    *int     `json:"minimumNights,omitempty"`
	PricePerNight    *int64   `json:"pricePerNight,omitempty"`
	TotalNights      *int     `json:"totalNights,omitempty"`
	TotalPrice       *int64   `json:"totalPrice,omitempty"`
	UnavailableDates []string `json:"unavailableDates,omitempty"`
}

func MapVerdict(v pricing.Verdict) Verdict {
	out := Verdict{Available: v.Available, Reason: v.Reason}
	for _, d := range v.BlockedDays {
		out.UnavailableDates = append(out.UnavailableDates, d.String())
	}
	if v.MinimumNights > 0 {
		mn := v.MinimumNights
		out.MinimumNights = &mn
	}
	if !v.Available {
		return out
	}
	ppn := v.PricePerNight.Amount
	tn := v.TotalNights
	tp := v.TotalPrice.Amount
	out.PricePerNight = &ppn
	out.TotalNights = &tn
	out.TotalPrice = &tp
	return out
}
