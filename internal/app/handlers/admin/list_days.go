package admin

import (
	"context"
	"sort"

	"gitecal/internal/app/dto"
	"gitecal/internal/app/queries"
	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

const listDaysKey = "admin.days.list"

type ListDaysQuery struct {
	From dates.Day
	To   dates.Day
}

func (q ListDaysQuery) Key() string { return listDaysKey }

// ListDaysHandler returns the logical override per date in a window,
// duplicates already collapsed to the newest write.
type ListDaysHandler struct {
	Overrides domainpricing.OverrideRepository
}

func (h *ListDaysHandler) Handle(ctx context.Context, q ListDaysQuery) ([]dto.DayOverride, error) {
	window, err := dates.NewRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	overrides, err := h.Overrides.Overrides(ctx, window)
	if err != nil {
		return nil, err
	}
	deduped := domainpricing.DedupeOverrides(overrides)
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Date.Before(deduped[j].Date)
	})
	return dto.MapDayOverrides(deduped), nil
}

var _ queries.Handler[ListDaysQuery, []dto.DayOverride] = (*ListDaysHandler)(nil)
