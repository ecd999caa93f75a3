package binance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"signals-backend/internal/domain"
)

const SpotBaseURL = "https://api.binance.com/api/v3"

const maxAttempts = 3

// Client fetches historical candles from the Binance spot REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = SpotBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetBars returns up to limit candles for the symbol, ordered ascending by
// open time. Transient failures are retried with an incremental backoff;
// after the last attempt the error is returned and the caller skips the
// symbol.
func (c *Client) GetBars(symbol, interval string, limit int) ([]domain.Bar, error) {
	url := fmt.Sprintf("%s/klines?symbol=%s&interval=%s&limit=%d", c.baseURL, symbol, interval, limit)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		bars, err := c.fetchKlines(url)
		if err != nil {
			lastErr = err
			continue
		}
		return bars, nil
	}
	return nil, fmt.Errorf("fetch klines %s: %w", symbol, lastErr)
}

func (c *Client) fetchKlines(url string) ([]domain.Bar, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance API error: %d", resp.StatusCode)
	}

	// Binance returns arrays per candle:
	// [openTime, open, high, low, close, volume, closeTime, ...]
	// openTime is a number, the price fields are strings.
	var klines [][]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&klines); err != nil {
		return nil, err
	}

	bars := make([]domain.Bar, 0, len(klines))
	for _, k := range klines {
		if len(k) < 6 {
			return nil, fmt.Errorf("malformed kline: %d fields", len(k))
		}

		openTime, err := parseMillis(k[0])
		if err != nil {
			return nil, err
		}

		values := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := parseValue(k[i+1])
			if err != nil {
				return nil, err
			}
			values[i] = v
		}

		bars = append(bars, domain.Bar{
			OpenTime: openTime,
			Open:     values[0],
			High:     values[1],
			Low:      values[2],
			Close:    values[3],
			Volume:   values[4],
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].OpenTime.Before(bars[j].OpenTime)
	})
	return bars, nil
}

func parseMillis(v interface{}) (time.Time, error) {
	switch val := v.(type) {
	case float64:
		return time.UnixMilli(int64(val)).UTC(), nil
	case json.Number:
		ms, err := val.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unexpected open time type %T", v)
}

func parseValue(v interface{}) (float64, error) {
	switch val := v.(type) {
	case string:
		return strconv.ParseFloat(val, 64)
	case float64:
		return val, nil
	}
	return 0, fmt.Errorf("unexpected kline value type %T", v)
}
