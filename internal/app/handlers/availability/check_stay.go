package availability

import (
	"context"

	"gitecal/internal/app/dto"
	"gitecal/internal/app/queries"
	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

const checkStayKey = "availability.check"

type CheckStayQuery struct {
	CheckIn  dates.Day
	CheckOut dates.Day
}

func (q CheckStayQuery) Key() string { return checkStayKey }

// CheckStayHandler answers a stay query from the admin-managed overlay:
// day overrides, pricing periods, legacy blocked ranges and defaults.
type CheckStayHandler struct {
	Overrides     domainpricing.OverrideRepository
	Periods       domainpricing.PeriodRepository
	BlockedRanges domainpricing.BlockedRangeRepository
	Rules         domainpricing.RulesRepository
}

func (h *CheckStayHandler) Handle(ctx context.Context, q CheckStayQuery) (dto.Verdict, error) {
	stay := dates.Range{From: q.CheckIn, To: q.CheckOut}
	if err := stay.Validate(); err != nil {
		// a backwards range is a verdict, not a transport fault
		return dto.Verdict{Available: false, Reason: "checkout must be after checkin"}, nil
	}

	overlay, err := loadOverlay(ctx, stay, h.Overrides, h.Periods, h.BlockedRanges, h.Rules)
	if err != nil {
		return dto.Verdict{}, err
	}
	return dto.MapVerdict(overlay.CheckStay(stay)), nil
}

var _ queries.Handler[CheckStayQuery, dto.Verdict] = (*CheckStayHandler)(nil)
