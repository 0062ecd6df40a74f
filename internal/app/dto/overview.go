package dto

import "gitecal/internal/domain/pricing"

type PricingPeriod struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	PricePerNight int64  `json:"pricePerNight"`
	MinimumNights int    `json:"minimumNights"`
	IsAvailable   bool   `json:"isAvailable"`
	IsActive      bool   `json:"isActive"`
}

type BlockedRange struct {
	ID        string `json:"id"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason,omitempty"`
	Comment   string `json:"comment,omitempty"`
	IsActive  bool   `json:"isActive"`
}

type BookingRules struct {
	DefaultPricePerNight     int64  `json:"defaultPricePerNight"`
	DefaultMinimumNights     int    `json:"defaultMinimumNights"`
	MaximumGuests            int    `json:"maximumGuests"`
	DepositPercentage        int64  `json:"depositPercentage"`
	SecurityDeposit          int64  `json:"securityDeposit"`
	TouristTaxPerPersonCents int64  `json:"touristTaxPerPersonCents"`
	CheckInTime              string `json:"checkInTime"`
	CheckOutTime             string `json:"checkOutTime"`
}

type CalendarOverview struct {
	PricingPeriods []PricingPeriod `json:"pricingPeriods"`
	BlockedRanges  []BlockedRange  `json:"blockedDates"`
	BookingRules   BookingRules    `json:"bookingRules"`
}

func MapOverview(periods []pricing.PricingPeriod, blocked []pricing.BlockedRange, rules pricing.Rules) CalendarOverview {
	out := CalendarOverview{
		PricingPeriods: make([]PricingPeriod, 0, len(periods)),
		BlockedRanges:  make([]BlockedRange, 0, len(blocked)),
		BookingRules: BookingRules{
			DefaultPricePerNight:     rules.DefaultPricePerNight.Amount,
			DefaultMinimumNights:     rules.DefaultMinimumNights,
			MaximumGuests:            rules.MaximumGuests,
			DepositPercentage:        rules.DepositPercentage,
			SecurityDeposit:          rules.SecurityDeposit.Amount,
			TouristTaxPerPersonCents: rules.TouristTaxPerGuestCent,
			CheckInTime:              rules.CheckInTime,
			CheckOutTime:             rules.CheckOutTime,
		},
	}
	for _, p := range periods {
		out.PricingPeriods = append(out.PricingPeriods, PricingPeriod{
			ID:            p.ID,
			Name:          p.Name,
			StartDate:     p.Start.String(),
			EndDate:       p.End.String(),
			PricePerNight: p.PricePerNight.Amount,
			MinimumNights: p.MinimumNights,
			IsAvailable:   p.IsAvailable,
			IsActive:      p.IsActive,
		})
	}
	for _, b := range blocked {
		out.BlockedRanges = append(out.BlockedRanges, BlockedRange{
			ID:        b.ID,
			StartDate: b.Start.String(),
			EndDate:   b.End.String(),
			Reason:    b.Reason,
			Comment:   b.Comment,
			IsActive:  b.IsActive,
		})
	}
	return out
}
