package lodgify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"gitecal/internal/app/policies"
	"gitecal/internal/domain/availability"
	"gitecal/internal/domain/shared/dates"
)

var ErrNoRoomData = errors.New("lodgify: response carries no room data")

// Client talks to the booking system's availability endpoint. The endpoint
// reports coarse periods per room type; only the first room type matters
// for a single-unit property.
type Client struct {
	Client     *http.Client
	BaseURL    string
	APIKey     string
	PropertyID string
	Logger     *slog.Logger
}

type roomAvailability struct {
	Periods []periodPayload `json:"periods"`
}

type periodPayload struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available int    `json:"available"`
	Bookings  []struct {
		ID int64 `json:"id"`
	} `json:"bookings"`
}

// Periods fetches availability periods for the window.
func (c *Client) Periods(ctx context.Context, window dates.Range) ([]availability.Period, error) {
	if c == nil || c.Client == nil {
		return nil, errors.New("lodgify: http client not configured")
	}
	if c.BaseURL == "" || c.PropertyID == "" {
		return nil, errors.New("lodgify: endpoint not configured")
	}

	url := fmt.Sprintf("%s/availability/%s?start=%s&end=%s",
		c.BaseURL, c.PropertyID, window.From, window.To.AddDays(-1))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("X-ApiKey", c.APIKey)
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(request)
	if err != nil {
		c.logError("availability request failed", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("lodgify: availability returned status %d: %s", resp.StatusCode, string(snippet))
		c.logError("availability returned error", err)
		return nil, err
	}

	var rooms []roomAvailability
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		c.logError("availability decode failed", err)
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNoRoomData
	}

	payloads := rooms[0].Periods
	periods := make([]availability.Period, 0, len(payloads))
	for _, p := range payloads {
		start, err := dates.ParseDay(p.Start)
		if err != nil {
			return nil, fmt.Errorf("lodgify: period start %q: %w", p.Start, err)
		}
		end, err := dates.ParseDay(p.End)
		if err != nil {
			return nil, fmt.Errorf("lodgify: period end %q: %w", p.End, err)
		}
		periods = append(periods, availability.Period{
			Start:          start,
			End:            end,
			AvailableCount: p.Available,
			HasBookings:    len(p.Bookings) > 0,
		})
	}
	return periods, nil
}

func (c *Client) logError(msg string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(msg, "property_id", c.PropertyID, "error", err)
}

var _ policies.PeriodSource = (*Client)(nil)
