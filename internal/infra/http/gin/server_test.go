package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitecal/internal/app/commands"
	"gitecal/internal/app/dto"
	AdminApp "gitecal/internal/app/handlers/admin"
	AvailabilityApp "gitecal/internal/app/handlers/availability"
	CalendarApp "gitecal/internal/app/handlers/calendar"
	QuotesApp "gitecal/internal/app/handlers/quotes"
	"gitecal/internal/app/queries"
	domainavail "gitecal/internal/domain/availability"
	"gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
	"gitecal/internal/infra/config"
	"gitecal/internal/infra/obs"
	"gitecal/internal/infra/storage/memory"
)

type stubPeriodSource struct {
	periods []domainavail.Period
}

func (s stubPeriodSource) Periods(ctx context.Context, window dates.Range) ([]domainavail.Period, error) {
	return s.periods, nil
}

type stubEventSource struct {
	events []domainavail.Event
}

func (s stubEventSource) Events(ctx context.Context, window dates.Range) ([]domainavail.Event, error) {
	return s.events, nil
}

func newTestServer(t *testing.T) (*http.Server, *memory.OverrideStore) {
	t.Helper()

	overrides := memory.NewOverrideStore()
	periods := memory.NewPeriodStore()
	blocked := memory.NewBlockedRangeStore()
	rules := memory.NewRulesStore()

	source := stubPeriodSource{periods: []domainavail.Period{{
		Start:          dates.MustDay("2025-06-01"),
		End:            dates.MustDay("2025-06-30"),
		AvailableCount: 1,
	}}}
	feed := stubEventSource{events: []domainavail.Event{{
		Start: dates.MustDay("2025-06-10"),
		End:   dates.MustDay("2025-06-13"),
	}}}

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, AvailabilityApp.GetCalendarQuery{}.Key(),
		queries.Handler[AvailabilityApp.GetCalendarQuery, dto.Calendar](&AvailabilityApp.GetCalendarHandler{
			PeriodSource:  source,
			EventSource:   feed,
			Overrides:     overrides,
			Periods:       periods,
			BlockedRanges: blocked,
			Rules:         rules,
		}))
	queries.RegisterHandler(queryBus, AvailabilityApp.CheckStayQuery{}.Key(),
		queries.Handler[AvailabilityApp.CheckStayQuery, dto.Verdict](&AvailabilityApp.CheckStayHandler{
			Overrides:     overrides,
			Periods:       periods,
			BlockedRanges: blocked,
			Rules:         rules,
		}))
	queries.RegisterHandler(queryBus, QuotesApp.GetQuoteQuery{}.Key(),
		queries.Handler[QuotesApp.GetQuoteQuery, dto.Quote](&QuotesApp.GetQuoteHandler{
			Overrides:     overrides,
			Periods:       periods,
			BlockedRanges: blocked,
			Rules:         rules,
		}))
	queries.RegisterHandler(queryBus, CalendarApp.GetOverviewQuery{}.Key(),
		queries.Handler[CalendarApp.GetOverviewQuery, dto.CalendarOverview](&CalendarApp.GetOverviewHandler{
			Periods:       periods,
			BlockedRanges: blocked,
			Rules:         rules,
		}))
	queries.RegisterHandler(queryBus, AdminApp.ListDaysQuery{}.Key(),
		queries.Handler[AdminApp.ListDaysQuery, []dto.DayOverride](&AdminApp.ListDaysHandler{
			Overrides: overrides,
		}))

	commandBus := commands.NewInMemoryBus()
	manage := &AdminApp.ManageDaysHandler{Overrides: overrides}
	manage.Register(commandBus)

	handlers := Handlers{
		Availability: AvailabilityHandler{Queries: queryBus},
		Quote:        QuoteHandler{Queries: queryBus},
		Overview:     OverviewHandler{Queries: queryBus},
		AdminDays:    AdminDaysHandler{Queries: queryBus, Commands: commandBus},
	}
	cfg := config.Config{Env: "test", HTTPAddr: ":0"}
	return NewServer(cfg, obs.Middleware{}, obs.HealthHandlers{}, handlers), overrides
}

func doRequest(t *testing.T, server *http.Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCalendarRoute(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/v1/calendar?from=2025-06-01&to=2025-06-20", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var calendar dto.Calendar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &calendar))
	require.Equal(t, "2025-06-01", calendar.From)
	require.Len(t, calendar.Days, 19)

	byDate := make(map[string]dto.CalendarDay, len(calendar.Days))
	for _, d := range calendar.Days {
		byDate[d.Date] = d
	}
	require.True(t, byDate["2025-06-05"].Available)
	require.False(t, byDate["2025-06-11"].Available) // booked via the feed
	require.NotNil(t, byDate["2025-06-05"].Price)
	require.Equal(t, int64(150), *byDate["2025-06-05"].Price)
}

func TestCalendarRouteMalformedDate(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/v1/calendar?from=06%2F01%2F2025", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityRoute(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/v1/availability?checkIn=2025-06-02&checkOut=2025-06-05", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var verdict dto.Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	require.True(t, verdict.Available)
	require.NotNil(t, verdict.TotalPrice)
	require.Equal(t, int64(450), *verdict.TotalPrice)

	rec = doRequest(t, server, http.MethodGet, "/api/v1/availability?checkIn=2025-06-05", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteRoute(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodPost, "/api/v1/quote", map[string]any{
		"checkIn": "2025-06-02", "checkOut": "2025-06-05", "adults": 2, "children": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var quote dto.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	require.Equal(t, 3, quote.Nights)
	require.Equal(t, int64(45000), quote.Pricing.AccommodationCents)
	// 3 nights x 3 guests x 1.50
	require.Equal(t, int64(1350), quote.Pricing.TouristTaxCents)

	rec = doRequest(t, server, http.MethodPost, "/api/v1/quote", map[string]any{
		"checkIn": "2025-06-02", "checkOut": "2025-06-05", "adults": 5, "children": 3,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOverviewRoute(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/v1/calendar/overview?from=2025-06-01&to=2025-07-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var overview dto.CalendarOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	require.Equal(t, int64(150), overview.BookingRules.DefaultPricePerNight)
	require.Equal(t, 2, overview.BookingRules.DefaultMinimumNights)
}

func TestAdminDaysRoutes(t *testing.T) {
	server, overrides := newTestServer(t)

	rec := doRequest(t, server, http.MethodPost, "/api/v1/admin/days", map[string]any{
		"days": []map[string]any{
			{"date": "2025-06-20", "isAvailable": false, "blockReason": "maintenance"},
			{"date": "2025-06-21", "isAvailable": true, "pricePerNight": 210},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/v1/admin/days?from=2025-06-01&to=2025-07-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Days []dto.DayOverride `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Days, 2)
	require.Equal(t, "2025-06-20", listed.Days[0].Date)
	require.False(t, listed.Days[0].IsAvailable)
	require.NotNil(t, listed.Days[1].PricePerNight)
	require.Equal(t, int64(210), *listed.Days[1].PricePerNight)

	rec = doRequest(t, server, http.MethodDelete, "/api/v1/admin/days", map[string]any{
		"dates": []string{"2025-06-20"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/api/v1/admin/days/reset", map[string]any{
		"from": "2025-06-01", "to": "2025-07-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	window, err := dates.NewRange(dates.MustDay("2025-06-01"), dates.MustDay("2025-07-01"))
	require.NoError(t, err)
	remaining, err := overrides.Overrides(context.Background(), window)
	require.NoError(t, err)
	require.Empty(t, remaining)

	rec = doRequest(t, server, http.MethodPost, "/api/v1/admin/days", map[string]any{
		"days": []map[string]any{{"date": "21-06-2025", "isAvailable": true}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, server, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

// override storage drives the calendar overlay end to end
func TestCalendarReflectsAdminBlock(t *testing.T) {
	server, overrides := newTestServer(t)

	require.NoError(t, overrides.Upsert(context.Background(), []pricing.DayOverride{{
		ID: "x", Date: dates.MustDay("2025-06-05"), IsAvailable: false, BlockReason: "owner stay",
	}}))

	rec := doRequest(t, server, http.MethodGet, "/api/v1/calendar?from=2025-06-01&to=2025-06-20", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var calendar dto.Calendar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &calendar))
	for _, d := range calendar.Days {
		if d.Date == "2025-06-05" {
			require.False(t, d.Available)
		}
	}
}
