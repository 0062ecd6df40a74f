package lodgify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitecal/internal/domain/shared/dates"
)

func TestClientPeriods(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("X-ApiKey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"periods": [
				{"start": "2025-06-01", "end": "2025-06-04", "available": 1, "bookings": []},
				{"start": "2025-06-05", "end": "2025-06-07", "available": 1, "bookings": [{"id": 42}]},
				{"start": "2025-06-08", "end": "2025-06-08", "available": 0, "bookings": []}
			]}
		]`))
	}))
	defer server.Close()

	client := &Client{
		Client:     server.Client(),
		BaseURL:    server.URL,
		APIKey:     "secret",
		PropertyID: "prop-1",
	}
	window, err := dates.NewRange(dates.MustDay("2025-06-01"), dates.MustDay("2025-06-09"))
	require.NoError(t, err)

	periods, err := client.Periods(context.Background(), window)
	require.NoError(t, err)
	require.Equal(t, "/availability/prop-1", gotPath)
	require.Equal(t, "start=2025-06-01&end=2025-06-08", gotQuery)
	require.Equal(t, "secret", gotKey)

	require.Len(t, periods, 3)
	require.Equal(t, dates.MustDay("2025-06-01"), periods[0].Start)
	require.Equal(t, dates.MustDay("2025-06-04"), periods[0].End)
	require.True(t, periods[0].Open())
	require.False(t, periods[1].Open())
	require.False(t, periods[2].Open())
}

func TestClientPeriodsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer server.Close()

	client := &Client{Client: server.Client(), BaseURL: server.URL, APIKey: "k", PropertyID: "p"}
	window, err := dates.NewRange(dates.MustDay("2025-06-01"), dates.MustDay("2025-06-03"))
	require.NoError(t, err)

	_, err = client.Periods(context.Background(), window)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 502")
}

func TestClientPeriodsEmptyRooms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := &Client{Client: server.Client(), BaseURL: server.URL, APIKey: "k", PropertyID: "p"}
	window, err := dates.NewRange(dates.MustDay("2025-06-01"), dates.MustDay("2025-06-03"))
	require.NoError(t, err)

	_, err = client.Periods(context.Background(), window)
	require.ErrorIs(t, err, ErrNoRoomData)
}
