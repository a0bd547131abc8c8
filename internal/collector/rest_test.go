package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentinel/internal/model"
)

func TestRESTFetcher_DailyBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bars/daily", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"timestamp": 1700179200, "open": "101.5", "high": "102", "low": "100", "close": "101.25", "volume": 1000},
			{"timestamp": 1700006400, "open": 99, "high": 100.5, "low": 98.5, "close": 100.1, "volume": "900"}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars("AAPL", 3)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.True(t, bars[0].Time.Before(bars[1].Time), "bars are sorted chronologically")
	assert.Equal(t, 100.1, bars[0].Close)
	assert.Equal(t, 900.0, bars[0].Volume)
	assert.Equal(t, 101.25, bars[1].Close)
	assert.Equal(t, 101.5, bars[1].Open)
}

func TestRESTFetcher_WeeklyFallsBackToDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/bars/weekly" {
			http.Error(w, "not supported", http.StatusNotFound)
			return
		}
		// Mon 2024-01-08 .. Fri 2024-01-12, Mon 2024-01-15
		w.Write([]byte(`[
			{"timestamp": 1704672000, "open": 10, "high": 11, "low": 9, "close": 10.5, "volume": 1},
			{"timestamp": 1704758400, "open": 10.5, "high": 12, "low": 10, "close": 11.5, "volume": 1},
			{"timestamp": 1705017600, "open": 11.5, "high": 11.8, "low": 8, "close": 9, "volume": 1},
			{"timestamp": 1705276800, "open": 9, "high": 9.5, "low": 8.5, "close": 9.2, "volume": 1}
		]`))
	}))
	defer srv.Close()

	bars, err := NewRESTFetcher(srv.URL, "", "").FetchWeeklyBars("AAPL", 4)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, 10.0, bars[0].Open)
	assert.Equal(t, 12.0, bars[0].High)
	assert.Equal(t, 8.0, bars[0].Low)
	assert.Equal(t, 9.0, bars[0].Close)
	assert.Equal(t, 3.0, bars[0].Volume)
	assert.True(t, bars[0].Time.Equal(time.Unix(1705017600, 0)))
	assert.Equal(t, 9.2, bars[1].Close)
}

func TestRESTFetcher_BothEndpointsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRESTFetcher(srv.URL, "", "").FetchWeeklyBars("AAPL", 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily fallback also failed")
}

func TestAggregateDailyToWeekly_Empty(t *testing.T) {
	assert.Nil(t, aggregateDailyToWeekly(nil))
	one := []model.OHLCV{{Time: time.Now(), Close: 1}}
	assert.Len(t, aggregateDailyToWeekly(one), 1)
}
