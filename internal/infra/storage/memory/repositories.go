package memory

import (
	"context"
	"sort"
	"sync"

	"gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
)

// OverrideStore keeps day overrides in memory, one per date.
type OverrideStore struct {
	mu    sync.RWMutex
	items map[string]pricing.DayOverride // keyed by date string
}

func NewOverrideStore() *OverrideStore {
	return &OverrideStore{items: make(map[string]pricing.DayOverride)}
}

func (s *OverrideStore) Overrides(ctx context.Context, window dates.Range) ([]pricing.DayOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pricing.DayOverride
	for _, o := range s.items {
		if window.Contains(o.Date) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *OverrideStore) Upsert(ctx context.Context, overrides []pricing.DayOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range overrides {
		s.items[o.Date.String()] = o
	}
	return nil
}

func (s *OverrideStore) Delete(ctx context.Context, days []dates.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range days {
		delete(s.items, d.String())
	}
	return nil
}

// PeriodStore keeps pricing periods in memory.
type PeriodStore struct {
	mu    sync.RWMutex
	items map[string]pricing.PricingPeriod
}

func NewPeriodStore() *PeriodStore {
	return &PeriodStore{items: make(map[string]pricing.PricingPeriod)}
}

func (s *PeriodStore) Periods(ctx context.Context, window dates.Range) ([]pricing.PricingPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pricing.PricingPeriod
	for _, p := range s.items {
		if !p.End.Before(window.From) && p.Start.Before(window.To) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *PeriodStore) Put(p pricing.PricingPeriod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ID] = p
}

// BlockedRangeStore keeps legacy blocked spans in memory.
type BlockedRangeStore struct {
	mu    sync.RWMutex
	items map[string]pricing.BlockedRange
}

func NewBlockedRangeStore() *BlockedRangeStore {
	return &BlockedRangeStore{items: make(map[string]pricing.BlockedRange)}
}

func (s *BlockedRangeStore) BlockedRanges(ctx context.Context, window dates.Range) ([]pricing.BlockedRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pricing.BlockedRange
	for _, b := range s.items {
		if !b.End.Before(window.From) && b.Start.Before(window.To) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *BlockedRangeStore) Put(b pricing.BlockedRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[b.ID] = b
}

// RulesStore keeps the singleton booking rules in memory, seeded with the
// property defaults.
type RulesStore struct {
	mu    sync.RWMutex
	rules pricing.Rules
}

func NewRulesStore() *RulesStore {
	return &RulesStore{rules: pricing.DefaultRules()}
}

func (s *RulesStore) Rules(ctx context.Context) (pricing.Rules, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules, nil
}

func (s *RulesStore) Set(rules pricing.Rules) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = rules
}

var (
	_ pricing.OverrideRepository     = (*OverrideStore)(nil)
	_ pricing.PeriodRepository       = (*PeriodStore)(nil)
	_ pricing.BlockedRangeRepository = (*BlockedRangeStore)(nil)
	_ pricing.RulesRepository        = (*RulesStore)(nil)
)
