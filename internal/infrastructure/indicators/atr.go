package indicators

import "math"

// CalculateATR computes the Average True Range as a simple rolling mean of
// the true range over the trailing period. Indices before period-1 are left
// at zero (the ATR is undefined there).
func CalculateATR(highs, lows, closes []float64, period int) []float64 {
	length := len(closes)
	atr := make([]float64, length)
	if length < period || period < 1 {
		return atr
	}

	trs := make([]float64, length)
	// No previous close for the first bar: its TR is just the bar range.
	trs[0] = highs[0] - lows[0]
	for i := 1; i < length; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		trs[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i := 0; i < length; i++ {
		sum += trs[i]
		if i >= period {
			sum -= trs[i-period]
		}
		if i >= period-1 {
			atr[i] = sum / float64(period)
		}
	}

	return atr
}
