package icalfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"gitecal/internal/app/policies"
	"gitecal/internal/domain/availability"
	"gitecal/internal/domain/shared/dates"
)

var ErrFeedUnavailable = errors.New("icalfeed: feed unavailable")

const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102T150405Z"
)

// Feed reads booked spans from an exported .ics calendar. Event DTSTART is
// the checkin day and DTEND the checkout day, so the span is end-exclusive
// just like availability.Event.
type Feed struct {
	Client *http.Client
	URL    string
	Logger *slog.Logger
}

// Events downloads and parses the feed, keeping only spans that touch the
// window. Transport and parse failures wrap ErrFeedUnavailable so callers
// can degrade instead of failing the whole calendar.
func (f *Feed) Events(ctx context.Context, window dates.Range) ([]availability.Event, error) {
	if f == nil || f.Client == nil || f.URL == "" {
		return nil, fmt.Errorf("%w: not configured", ErrFeedUnavailable)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	resp, err := f.Client.Do(request)
	if err != nil {
		f.logWarn("feed fetch failed", err)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		err := fmt.Errorf("%w: status %d: %s", ErrFeedUnavailable, resp.StatusCode, string(snippet))
		f.logWarn("feed returned error", err)
		return nil, err
	}

	calendar, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		f.logWarn("feed parse failed", err)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	var events []availability.Event
	for _, v := range calendar.Events() {
		event, ok, err := eventSpan(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
		}
		if !ok {
			continue
		}
		if event.Start.Before(event.End) && window.From.Before(event.End) && event.Start.Before(window.To) {
			events = append(events, event)
		}
	}
	return events, nil
}

func eventSpan(v *ics.VEvent) (availability.Event, bool, error) {
	startProp := v.GetProperty(ics.ComponentPropertyDtStart)
	if startProp == nil {
		return availability.Event{}, false, nil
	}
	start, err := parseStamp(startProp.Value)
	if err != nil {
		return availability.Event{}, false, fmt.Errorf("bad DTSTART %q: %v", startProp.Value, err)
	}

	end := start.Next()
	if endProp := v.GetProperty(ics.ComponentPropertyDtEnd); endProp != nil {
		end, err = parseStamp(endProp.Value)
		if err != nil {
			return availability.Event{}, false, fmt.Errorf("bad DTEND %q: %v", endProp.Value, err)
		}
	}
	return availability.Event{Start: start, End: end}, true, nil
}

func parseStamp(value string) (dates.Day, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return dates.DayOf(t), nil
	}
	t, err := time.Parse(dateTimeLayout, value)
	if err != nil {
		return dates.Day{}, err
	}
	return dates.DayOf(t), nil
}

func (f *Feed) logWarn(msg string, err error) {
	if f.Logger == nil {
		return
	}
	f.Logger.Warn(msg, "url", f.URL, "error", err)
}

var _ policies.EventSource = (*Feed)(nil)
