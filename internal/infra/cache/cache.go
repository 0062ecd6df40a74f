package cache

import (
	"context"
	"sync"
	"time"

	"gitecal/internal/app/policies"
	"gitecal/internal/domain/availability"
	"gitecal/internal/domain/shared/dates"
)

type periodEntry struct {
	periods []availability.Period
	expires time.Time
}

type eventEntry struct {
	events  []availability.Event
	expires time.Time
}

// SourceCache wraps the upstream sources with a TTL snapshot per window.
// Admin writes and broker events call Invalidate to force a refetch before
// the TTL runs out.
type SourceCache struct {
	mu      sync.RWMutex
	periods policies.PeriodSource
	events  policies.EventSource
	ttl     time.Duration
	now     func() time.Time

	periodSnaps map[string]periodEntry
	eventSnaps  map[string]eventEntry
}

func NewSourceCache(periods policies.PeriodSource, events policies.EventSource, ttl time.Duration) *SourceCache {
	return &SourceCache{
		periods:     periods,
		events:      events,
		ttl:         ttl,
		now:         time.Now,
		periodSnaps: make(map[string]periodEntry),
		eventSnaps:  make(map[string]eventEntry),
	}
}

func (c *SourceCache) Periods(ctx context.Context, window dates.Range) ([]availability.Period, error) {
	key := windowKey(window)

	c.mu.RLock()
	entry, ok := c.periodSnaps[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expires) {
		return entry.periods, nil
	}

	periods, err := c.periods.Periods(ctx, window)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.periodSnaps[key] = periodEntry{periods: periods, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return periods, nil
}

func (c *SourceCache) Events(ctx context.Context, window dates.Range) ([]availability.Event, error) {
	key := windowKey(window)

	c.mu.RLock()
	entry, ok := c.eventSnaps[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expires) {
		return entry.events, nil
	}

	events, err := c.events.Events(ctx, window)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.eventSnaps[key] = eventEntry{events: events, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return events, nil
}

// Invalidate drops every snapshot. Cheap enough for a single property that
// finer-grained invalidation is not worth the bookkeeping.
func (c *SourceCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.periodSnaps = make(map[string]periodEntry)
	c.eventSnaps = make(map[string]eventEntry)
}

func windowKey(window dates.Range) string {
	return window.From.String() + "/" + window.To.String()
}

var (
	_ policies.PeriodSource = (*SourceCache)(nil)
	_ policies.EventSource  = (*SourceCache)(nil)
)
