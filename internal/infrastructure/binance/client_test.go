package binance

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func klinesJSON() string {
	// Out of order on purpose; GetBars must sort ascending.
	return `[
		[1717286400000, "101.0", "103.0", "100.0", "102.0", "2000.5", 1717372799999],
		[1717200000000, "100.0", "102.0", "99.0", "101.0", "1500.25", 1717286399999]
	]`
}

func TestGetBars_ParsesAndSortsKlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "200", r.URL.Query().Get("limit"))
		fmt.Fprint(w, klinesJSON())
	}))
	defer server.Close()

	bars, err := NewClient(server.URL).GetBars("BTCUSDT", "1d", 200)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.True(t, bars[0].OpenTime.Before(bars[1].OpenTime))
	assert.Equal(t, time.UnixMilli(1717200000000).UTC(), bars[0].OpenTime)
	assert.Equal(t, 100.0, bars[0].Open)
	assert.Equal(t, 102.0, bars[0].High)
	assert.Equal(t, 99.0, bars[0].Low)
	assert.Equal(t, 101.0, bars[0].Close)
	assert.Equal(t, 1500.25, bars[0].Volume)
	assert.Equal(t, 102.0, bars[1].Close)
}

func TestGetBars_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, klinesJSON())
	}))
	defer server.Close()

	bars, err := NewClient(server.URL).GetBars("BTCUSDT", "1d", 200)
	require.NoError(t, err)
	assert.Len(t, bars, 2)
	assert.Equal(t, 3, attempts)
}

func TestGetBars_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetBars("BTCUSDT", "1d", 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, maxAttempts, attempts)
}

func TestGetBars_MalformedKlineFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[[1717200000000, "100.0"]]`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetBars("BTCUSDT", "1d", 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed kline")
}
