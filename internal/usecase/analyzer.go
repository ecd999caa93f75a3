package usecase

import (
	"errors"
	"fmt"

	"signals-backend/internal/domain"
	"signals-backend/internal/infrastructure/indicators"
)

// ErrInsufficientData marks a symbol whose bar history is too short to
// analyze. The scanner logs it and moves on.
var ErrInsufficientData = errors.New("insufficient data")

// Analyzer turns a bar series into a scored Analysis. It holds only
// configuration; every call is independent.
type Analyzer struct {
	minBars     int
	pivotWindow int
	scoring     ScoreConfig
}

func NewAnalyzer(minBars, pivotWindow int, scoring ScoreConfig) *Analyzer {
	return &Analyzer{
		minBars:     minBars,
		pivotWindow: pivotWindow,
		scoring:     scoring,
	}
}

// Analyze computes indicators, locates support/resistance, derives the
// risk/reward plan and scores the result.
func (a *Analyzer) Analyze(symbol, timeframe string, bars []domain.Bar) (*domain.Analysis, error) {
	if len(bars) < a.minBars {
		return nil, fmt.Errorf("%s: %w (%d bars, need %d)", symbol, ErrInsufficientData, len(bars), a.minBars)
	}

	length := len(bars)
	closes := make([]float64, length)
	highs := make([]float64, length)
	lows := make([]float64, length)
	volumes := make([]float64, length)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
		volumes[i] = b.Volume
	}

	ema20 := indicators.CalculateEMA(closes, 20)
	ema50 := indicators.CalculateEMA(closes, 50)
	ema200 := indicators.CalculateEMA(closes, 200)
	macd, signalLine, _ := indicators.CalculateMACD(closes, 12, 26, 9)
	atr := indicators.CalculateATR(highs, lows, closes, 14)
	adx := indicators.CalculateADX(highs, lows, closes, 14)
	rsi := indicators.CalculateRSI(closes, 14)

	last := length - 1
	prev := last - 1

	support, resistance := indicators.SupportResistance(highs, lows, a.pivotWindow)

	// Trailing 20-bar mean, current bar included.
	volWindow := 20
	if volWindow > length {
		volWindow = length
	}
	avgVolume := 0.0
	for i := length - volWindow; i < length; i++ {
		avgVolume += volumes[i]
	}
	avgVolume /= float64(volWindow)
	volumeIncrease := 0.0
	if avgVolume > 0 {
		volumeIncrease = (volumes[last]/avgVolume - 1) * 100
	}

	currentRSI := rsi[last]

	analysis := &domain.Analysis{
		Symbol:     symbol,
		Timeframe:  timeframe,
		Price:      closes[last],
		EMA20:      ema20[last],
		EMA50:      ema50[last],
		EMA200:     ema200[last],
		MACD:       macd[last],
		SignalLine: signalLine[last],
		RSI:        currentRSI,
		ATR:        atr[last],
		ADX:        adx[last],

		Support:           support,
		Resistance:        resistance,
		VolumeIncreasePct: volumeIncrease,

		InUptrend:      closes[last] > ema200[last],
		EMAOrder:       ema20[last] > ema50[last] && ema50[last] > ema200[last],
		MACDPositive:   macd[last] > signalLine[last],
		RSIHealthy:     currentRSI > 30 && currentRSI < 80,
		RSIOversold:    currentRSI < 30,
		RSIGaining:     currentRSI > rsi[length-5],
		TestingSupport: lows[last] <= support*1.005 && closes[last] > support,
	}
	analysis.MACDCrossover = macd[prev] < signalLine[prev] && analysis.MACDPositive

	rr := CalculateRiskReward(closes[last], atr[last], support, resistance)
	analysis.Entry = rr.Entry
	analysis.StopLoss = rr.StopLoss
	analysis.TP1 = rr.TP1
	analysis.TP2 = rr.TP2
	analysis.Risk = rr.Risk
	analysis.RewardTP1 = rr.RewardTP1
	analysis.RewardTP2 = rr.RewardTP2
	analysis.RatioTP1 = rr.RatioTP1
	analysis.RatioTP2 = rr.RatioTP2

	ApplyScore(analysis, a.scoring)

	return analysis, nil
}

// RiskReward is the trade plan derived from one analysis.
type RiskReward struct {
	Entry     float64
	StopLoss  float64
	TP1       float64
	TP2       float64
	Risk      float64
	RewardTP1 float64
	RewardTP2 float64
	RatioTP1  float64
	RatioTP2  float64
}

// CalculateRiskReward derives the entry/stop/target levels. The stop is the
// tighter of 1.5 ATR below entry and 1% below support; targets sit 2 and 3
// ATR above entry. Without a usable ATR the support/resistance levels stand
// in. A stop that comes out non-positive or above the entry falls back to
// 2% below entry, so StopLoss < Entry always holds.
func CalculateRiskReward(entry, atr, support, resistance float64) RiskReward {
	stopByATR := support * 0.99
	if atr > 0 {
		stopByATR = entry - 1.5*atr
	}

	stopLoss := stopByATR
	if floor := support * 0.99; floor < stopLoss {
		stopLoss = floor
	}
	if stopLoss <= 0 || stopLoss >= entry {
		stopLoss = entry * 0.98
	}

	tp1 := resistance * 0.98
	tp2 := resistance
	if atr > 0 {
		tp1 = entry + 2*atr
		tp2 = entry + 3*atr
	}

	rr := RiskReward{
		Entry:     entry,
		StopLoss:  stopLoss,
		TP1:       tp1,
		TP2:       tp2,
		Risk:      entry - stopLoss,
		RewardTP1: tp1 - entry,
		RewardTP2: tp2 - entry,
	}
	if rr.Risk > 0 {
		rr.RatioTP1 = rr.RewardTP1 / rr.Risk
		rr.RatioTP2 = rr.RewardTP2 / rr.Risk
	}
	return rr
}
