package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gitecal/internal/app/commands"
	"gitecal/internal/app/policies"
	domainpricing "gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

const (
	upsertDaysKey = "admin.days.upsert"
	deleteDaysKey = "admin.days.delete"
	resetDaysKey  = "admin.days.reset"
)

// UpsertDaysCommand replaces the override of every listed date; the newly
// written record is the logical one from then on.
type UpsertDaysCommand struct {
	Days []domainpricing.DayOverride
}

func (c UpsertDaysCommand) Key() string { return upsertDaysKey }

type DeleteDaysCommand struct {
	Dates []dates.Day
}

func (c DeleteDaysCommand) Key() string { return deleteDaysKey }

// ResetDaysCommand wipes every override inside a window, reopening those
// days to the range-level sources.
type ResetDaysCommand struct {
	From dates.Day
	To   dates.Day
}

func (c ResetDaysCommand) Key() string { return resetDaysKey }

type DaysResult struct {
	Count int `json:"count"`
}

// ManageDaysHandler owns the admin write path for day overrides. Every
// write publishes a calendar.updated event; cache layers treat that as the
// invalidation trigger.
type ManageDaysHandler struct {
	Overrides domainpricing.OverrideRepository
	Publisher policies.Publisher
	Logger    *slog.Logger
	Now       func() time.Time
}

func (h *ManageDaysHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

func (h *ManageDaysHandler) HandleUpsert(ctx context.Context, cmd UpsertDaysCommand) (DaysResult, error) {
	if len(cmd.Days) == 0 {
		return DaysResult{}, nil
	}
	now := h.now()
	days := make([]domainpricing.DayOverride, 0, len(cmd.Days))
	changed := make([]string, 0, len(cmd.Days))
	for _, d := range cmd.Days {
		d.UpdatedAt = now
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		days = append(days, d)
		changed = append(changed, d.Date.String())
	}
	if err := h.Overrides.Upsert(ctx, days); err != nil {
		return DaysResult{}, err
	}
	h.publish(ctx, "days.upserted", changed)
	return DaysResult{Count: len(days)}, nil
}

func (h *ManageDaysHandler) HandleDelete(ctx context.Context, cmd DeleteDaysCommand) (DaysResult, error) {
	if len(cmd.Dates) == 0 {
		return DaysResult{}, nil
	}
	if err := h.Overrides.Delete(ctx, cmd.Dates); err != nil {
		return DaysResult{}, err
	}
	changed := make([]string, 0, len(cmd.Dates))
	for _, d := range cmd.Dates {
		changed = append(changed, d.String())
	}
	h.publish(ctx, "days.deleted", changed)
	return DaysResult{Count: len(cmd.Dates)}, nil
}

func (h *ManageDaysHandler) HandleReset(ctx context.Context, cmd ResetDaysCommand) (DaysResult, error) {
	window, err := dates.NewRange(cmd.From, cmd.To)
	if err != nil {
		return DaysResult{}, err
	}
	existing, err := h.Overrides.Overrides(ctx, window)
	if err != nil {
		return DaysResult{}, err
	}
	if len(existing) == 0 {
		return DaysResult{}, nil
	}
	seen := make(map[dates.Day]struct{}, len(existing))
	days := make([]dates.Day, 0, len(existing))
	for _, o := range existing {
		if _, ok := seen[o.Date]; ok {
			continue
		}
		seen[o.Date] = struct{}{}
		days = append(days, o.Date)
	}
	if err := h.Overrides.Delete(ctx, days); err != nil {
		return DaysResult{}, err
	}
	changed := make([]string, 0, len(days))
	for _, d := range days {
		changed = append(changed, d.String())
	}
	h.publish(ctx, "days.reset", changed)
	return DaysResult{Count: len(days)}, nil
}

// publish is best effort: a lost event only delays cache refresh until TTL.
func (h *ManageDaysHandler) publish(ctx context.Context, kind string, changed []string) {
	if h.Publisher == nil {
		return
	}
	event := policies.CalendarEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Dates:      changed,
		OccurredAt: h.now().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishCalendarUpdated(ctx, event); err != nil && h.Logger != nil {
		h.Logger.Error("calendar event publish failed", "kind", kind, "error", err)
	}
}

// Register wires the three commands onto the bus.
func (h *ManageDaysHandler) Register(bus *commands.InMemoryBus) {
	commands.RegisterHandler(bus, UpsertDaysCommand{}.Key(),
		commands.HandlerFunc[UpsertDaysCommand, DaysResult](h.HandleUpsert))
	commands.RegisterHandler(bus, DeleteDaysCommand{}.Key(),
		commands.HandlerFunc[DeleteDaysCommand, DaysResult](h.HandleDelete))
	commands.RegisterHandler(bus, ResetDaysCommand{}.Key(),
		commands.HandlerFunc[ResetDaysCommand, DaysResult](h.HandleReset))
}
