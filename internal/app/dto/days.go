package dto

import "gitecal/internal/domain/pricing"

type DayOverride struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	PricePerNight  *int64 `json:"pricePerNight,omitempty"`
	MinimumNights  *int   `json:"minimumNights,omitempty"`
	IsAvailable    bool   `json:"isAvailable"`
	BlockReason    string `json:"blockReason,omitempty"`
	Comment        string `json:"comment,omitempty"`
	HighlightColor string `json:"highlightColor,omitempty"`
}

func MapDayOverrides(overrides []pricing.DayOverride) []DayOverride {
	out := make([]DayOverride, 0, len(overrides))
	for _, o := range overrides {
		d := DayOverride{
			ID:             o.ID,
			Date:           o.Date.String(),
			IsAvailable:    o.IsAvailable,
			BlockReason:    o.BlockReason,
			Comment:        o.Comment,
			HighlightColor: o.HighlightColor,
		}
		if o.PricePerNight != nil {
			amount := o.PricePerNight.Amount
			d.PricePerNight = &amount
		}
		if o.MinimumNights != nil {
			mn := *o.MinimumNights
			d.MinimumNights = &mn
		}
		out = append(out, d)
	}
	return out
}
