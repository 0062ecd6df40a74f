package calendar

import (
	"context"

	"gitecal/internal/app/dto"
	"gitecal/internal/app/queries"
	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

const getOverviewKey = "calendar.overview"

// GetOverviewQuery fetches the admin calendar data for a window: pricing
// periods, legacy blocked ranges and booking rules.
type GetOverviewQuery struct {
	From dates.Day
	To   dates.Day
}

func (q GetOverviewQuery) Key() string { return getOverviewKey }

type GetOverviewHandler struct {
	Periods       domainpricing.PeriodRepository
	BlockedRanges domainpricing.BlockedRangeRepository
	Rules         domainpricing.RulesRepository
}

func (h *GetOverviewHandler) Handle(ctx context.Context, q GetOverviewQuery) (dto.CalendarOverview, error) {
	window, err := dates.NewRange(q.From, q.To)
	if err != nil {
		return dto.CalendarOverview{}, err
	}

	rules := domainpricing.DefaultRules()
	if h.Rules != nil {
		rules, err = h.Rules.Rules(ctx)
		if err != nil {
			return dto.CalendarOverview{}, err
		}
	}

	var periods []domainpricing.PricingPeriod
	if h.Periods != nil {
		periods, err = h.Periods.Periods(ctx, window)
		if err != nil {
			return dto.CalendarOverview{}, err
		}
	}

	var blocked []domainpricing.BlockedRange
	if h.BlockedRanges != nil {
		blocked, err = h.BlockedRanges.BlockedRanges(ctx, window)
		if err != nil {
			return dto.CalendarOverview{}, err
		}
	}

	return dto.MapOverview(periods, blocked, rules), nil
}

var _ queries.Handler[GetOverviewQuery, dto.CalendarOverview] = (*GetOverviewHandler)(nil)
