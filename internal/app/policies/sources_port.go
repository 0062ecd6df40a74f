package policies

import (
	"context"

	"gitecal/internal/domain/availability"
	"gitecal/internal/domain/shared/dates"
)

// PeriodSource is the booking-system upstream delivering coarse
// availability periods for the property over a window.
type PeriodSource interface {
	Periods(ctx context.Context, window dates.Range) ([]availability.Period, error)
}

// EventSource is the independent calendar-feed upstream delivering booked
// spans. It may be unreachable; callers degrade to the period source alone.
type EventSource interface {
	Events(ctx context.Context, window dates.Range) ([]availability.Event, error)
}
