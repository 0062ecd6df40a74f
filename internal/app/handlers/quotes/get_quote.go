package quotes

import (
	"context"

	"gitecal/internal/app/dto"
	"gitecal/internal/app/queries"
	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

const getQuoteKey = "quotes.get"

type GetQuoteQuery struct {
	CheckIn  dates.Day
	CheckOut dates.Day
	Adults   int
	Children int
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

// GetQuoteHandler prices a stay into a full payment breakdown.
type GetQuoteHandler struct {
	Overrides     domainpricing.OverrideRepository
	Periods       domainpricing.PeriodRepository
	BlockedRanges domainpricing.BlockedRangeRepository
	Rules         domainpricing.RulesRepository
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.Quote, error) {
	stay, err := dates.NewRange(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.Quote{}, err
	}

	overlay, err := h.loadOverlay(ctx, stay)
	if err != nil {
		return dto.Quote{}, err
	}

	quote, err := overlay.BuildQuote(stay, q.Adults, q.Children)
	if err != nil {
		return dto.Quote{}, err
	}
	return dto.MapQuote(quote), nil
}

func (h *GetQuoteHandler) loadOverlay(ctx context.Context, window dates.Range) (domainpricing.Calendar, error) {
	overlay := domainpricing.Calendar{Rules: domainpricing.DefaultRules()}
	if h.Rules != nil {
		r, err := h.Rules.Rules(ctx)
		if err != nil {
			return overlay, err
		}
		overlay.Rules = r
	}
	if h.Overrides != nil {
		o, err := h.Overrides.Overrides(ctx, window)
		if err != nil {
			return overlay, err
		}
		overlay.Overrides = domainpricing.DedupeOverrides(o)
	}
	if h.Periods != nil {
		p, err := h.Periods.Periods(ctx, window)
		if err != nil {
			return overlay, err
		}
		overlay.Periods = p
	}
	if h.BlockedRanges != nil {
		b, err := h.BlockedRanges.BlockedRanges(ctx, window)
		if err != nil {
			return overlay, err
		}
		overlay.BlockedRanges = b
	}
	return overlay, nil
}

var _ queries.Handler[GetQuoteQuery, dto.Quote] = (*GetQuoteHandler)(nil)
