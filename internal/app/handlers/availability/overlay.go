package availability

import (
	"context"

	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

// loadOverlay fetches the admin calendar snapshot for a window. Nil
// repositories fall back to empty sets and default rules so handlers stay
// usable in partially wired setups (tests, local mode).
func loadOverlay(
	ctx context.Context,
	window dates.Range,
	overrides domainpricing.OverrideRepository,
	periods domainpricing.PeriodRepository,
	blockedRanges domainpricing.BlockedRangeRepository,
	rules domainpricing.RulesRepository,
) (domainpricing.Calendar, error) {
	overlay := domainpricing.Calendar{Rules: domainpricing.DefaultRules()}
	if rules != nil {
		r, err := rules.Rules(ctx)
		if err != nil {
			return overlay, err
		}
		overlay.Rules = r
	}
	if overrides != nil {
		o, err := overrides.Overrides(ctx, window)
		if err != nil {
			return overlay, err
		}
		overlay.Overrides = domainpricing.DedupeOverrides(o)
	}
	if periods != nil {
		p, err := periods.Periods(ctx, window)
		if err != nil {
			return overlay, err
		}
		overlay.Periods = p
	}
	if blockedRanges != nil {
		b, err := blockedRanges.BlockedRanges(ctx, window)
		if err != nil {
			return overlay, err
		}
		overlay.BlockedRanges = b
	}
	return overlay, nil
}
