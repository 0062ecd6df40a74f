package availability

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"gitecal/internal/app/dto"
	"gitecal/internal/app/policies"
	"gitecal/internal/app/queries"
	domainavail "gitecal/internal/domain/availability"
	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

const getCalendarKey = "availability.calendar"

var ErrPeriodSourceMissing = errors.New("availability: period source not configured")

type GetCalendarQuery struct {
	From dates.Day
	To   dates.Day
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

// GetCalendarHandler reconciles both upstream sources and the admin overlay
// into the per-day calendar for a window.
type GetCalendarHandler struct {
	PeriodSource  policies.PeriodSource
	EventSource   policies.EventSource
	Overrides     domainpricing.OverrideRepository
	Periods       domainpricing.PeriodRepository
	BlockedRanges domainpricing.BlockedRangeRepository
	Rules         domainpricing.RulesRepository
	Logger        *slog.Logger
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	window, err := dates.NewRange(q.From, q.To)
	if err != nil {
		return dto.Calendar{}, err
	}
	if h.PeriodSource == nil {
		return dto.Calendar{}, ErrPeriodSourceMissing
	}

	// both upstreams are independent; fetch them in parallel
	var (
		wg         sync.WaitGroup
		periods    []domainavail.Period
		periodsErr error
		events     []domainavail.Event
		eventsErr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		periods, periodsErr = h.PeriodSource.Periods(ctx, window)
	}()
	if h.EventSource != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			events, eventsErr = h.EventSource.Events(ctx, window)
		}()
	}
	wg.Wait()

	if periodsErr != nil {
		return dto.Calendar{}, periodsErr
	}
	degraded := false
	if eventsErr != nil {
		// degrade to the period source instead of failing the calendar
		degraded = true
		events = nil
		if h.Logger != nil {
			h.Logger.Warn("calendar feed unavailable, using booking periods only", "error", eventsErr)
		}
	}

	facts, err := domainavail.ExpandPeriods(periods)
	if err != nil {
		return dto.Calendar{}, err
	}

	overlay, err := loadOverlay(ctx, window, h.Overrides, h.Periods, h.BlockedRanges, h.Rules)
	if err != nil {
		return dto.Calendar{}, err
	}

	blocked := domainavail.MergeBlocked(facts, events, window)
	calendar := domainavail.BuildCalendar(window, facts, blocked)
	calendar = applyOverlay(calendar, overlay)
	calendar = domainavail.FilterOrphans(calendar, overlay.Rules.DefaultMinimumNights)

	return dto.MapCalendar(window, calendar, degraded), nil
}

// applyOverlay stamps admin blocks and resolved nightly prices onto the
// source-derived calendar. Day overrides win in both directions: an explicit
// available override reopens a day only the legacy admin ranges closed,
// never one the booking sources closed.
func applyOverlay(calendar []domainavail.DayFact, overlay domainpricing.Calendar) []domainavail.DayFact {
	overrideByDay := make(map[dates.Day]domainpricing.DayOverride, len(overlay.Overrides))
	for _, o := range overlay.Overrides {
		overrideByDay[o.Date] = o
	}

	out := make([]domainavail.DayFact, len(calendar))
	copy(out, calendar)
	for i := range out {
		d := out[i].Date
		if o, ok := overrideByDay[d]; ok {
			if !o.IsAvailable {
				out[i].Available = false
			}
		} else {
			for _, b := range overlay.BlockedRanges {
				if b.Contains(d) {
					out[i].Available = false
					break
				}
			}
		}
		price := overlay.ResolveNightly(d, overrideByDay)
		out[i].Price = &price
	}
	return out
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
