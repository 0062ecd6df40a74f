package policies

import "context"

// CalendarEvent is emitted whenever the admin changes calendar data; cache
// layers subscribe to it as their invalidation trigger.
type CalendarEvent struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"`
	Dates      []string `json:"dates,omitempty"`
	OccurredAt string   `json:"occurred_at"`
}

// Publisher delivers calendar change events to interested consumers.
type Publisher interface {
	PublishCalendarUpdated(ctx context.Context, event CalendarEvent) error
}
