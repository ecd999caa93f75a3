package usecase

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signals-backend/internal/domain"
)

func makeBars(closes []float64) []domain.Bar {
	bars := make([]domain.Bar, len(closes))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = domain.Bar{
			OpenTime: start.Add(time.Duration(i) * 24 * time.Hour),
			Open:     c - 0.5,
			High:     c + 1,
			Low:      c - 1,
			Close:    c,
			Volume:   1000,
		}
	}
	return bars
}

func rampCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		// Gentle uptrend with a small wiggle so pivots exist.
		closes[i] = 100 + 0.5*float64(i) + 2*math.Sin(float64(i)/3)
	}
	return closes
}

func TestAnalyze_RejectsShortHistory(t *testing.T) {
	analyzer := NewAnalyzer(30, 30, DefaultScoreConfig())

	_, err := analyzer.Analyze("BTCUSDT", "1d", makeBars(rampCloses(29)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestAnalyze_UptrendSeries(t *testing.T) {
	analyzer := NewAnalyzer(30, 30, DefaultScoreConfig())
	bars := makeBars(rampCloses(210))

	a, err := analyzer.Analyze("BTCUSDT", "1d", bars)
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", a.Symbol)
	assert.Equal(t, "1d", a.Timeframe)
	assert.Equal(t, bars[len(bars)-1].Close, a.Price)
	assert.Equal(t, a.Price, a.Entry)

	assert.True(t, a.InUptrend, "price should sit above EMA200 in a long ramp")
	assert.True(t, a.EMAOrder)
	assert.Greater(t, a.ADX, 0.0)
	assert.Greater(t, a.ATR, 0.0)

	// Level ordering the tracker relies on.
	assert.Less(t, a.StopLoss, a.Entry)
	assert.Less(t, a.TP1, a.TP2)
	assert.Greater(t, a.Support, 0.0)
	assert.Greater(t, a.Resistance, 0.0)

	// The gate is a conjunction; an alert implies every leg.
	if a.ShouldAlert {
		assert.GreaterOrEqual(t, a.Confidence, 70)
		assert.GreaterOrEqual(t, a.RatioTP1, 1.0)
		assert.True(t, a.InUptrend)
	}
}

func TestCalculateRiskReward_ATRDriven(t *testing.T) {
	rr := CalculateRiskReward(100, 2, 95, 110)

	// 1.5 ATR stop is 97, but 1% under support is tighter at 94.05.
	assert.InDelta(t, 94.05, rr.StopLoss, 1e-9)
	assert.InDelta(t, 104, rr.TP1, 1e-9)
	assert.InDelta(t, 106, rr.TP2, 1e-9)
	assert.InDelta(t, 5.95, rr.Risk, 1e-9)
	assert.InDelta(t, 4/5.95, rr.RatioTP1, 1e-9)
	assert.InDelta(t, 6/5.95, rr.RatioTP2, 1e-9)
}

func TestCalculateRiskReward_NoATRFallsBackToLevels(t *testing.T) {
	rr := CalculateRiskReward(100, 0, 95, 110)

	assert.InDelta(t, 94.05, rr.StopLoss, 1e-9)
	assert.InDelta(t, 107.8, rr.TP1, 1e-9) // 2% under resistance
	assert.InDelta(t, 110, rr.TP2, 1e-9)
}

func TestCalculateRiskReward_DegenerateStopFallsBackToTwoPercent(t *testing.T) {
	// Support above the entry would put the stop above the entry.
	above := CalculateRiskReward(100, 0, 200, 250)
	assert.InDelta(t, 98, above.StopLoss, 1e-9)

	// No support at all would put the stop at zero.
	none := CalculateRiskReward(100, 0, 0, 110)
	assert.InDelta(t, 98, none.StopLoss, 1e-9)
}

func TestCalculateRiskReward_OrderingInvariants(t *testing.T) {
	cases := []struct {
		entry, atr, support, resistance float64
	}{
		{100, 2, 95, 110},
		{100, 0, 95, 110},
		{100, 80, 95, 110}, // huge ATR drags the raw stop negative
		{0.1465, 0.004, 0.14, 0.16},
		{100, 0, 200, 250},
	}
	for _, tc := range cases {
		rr := CalculateRiskReward(tc.entry, tc.atr, tc.support, tc.resistance)
		assert.Less(t, rr.StopLoss, rr.Entry, "case %+v", tc)
		assert.Greater(t, rr.StopLoss, 0.0, "case %+v", tc)
		assert.Less(t, rr.TP1, rr.TP2, "case %+v", tc)
		assert.Greater(t, rr.Risk, 0.0, "case %+v", tc)
	}
}
