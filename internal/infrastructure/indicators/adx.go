package indicators

import "math"

// wilderSmooth applies a recursive EMA with alpha = 1/period, seeded with
// the first value.
func wilderSmooth(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || period < 1 {
		return out
	}

	alpha := 1.0 / float64(period)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// CalculateADX computes the Average Directional Index: directional movements
// floored at zero, Wilder-smoothed, turned into DI+/DI- against the rolling
// ATR, then DX smoothed once more. Indices where the ATR is still undefined
// stay at zero.
func CalculateADX(highs, lows, closes []float64, period int) []float64 {
	length := len(closes)
	if length < period+1 || period < 1 {
		return make([]float64, length)
	}

	plusDM := make([]float64, length)
	minusDM := make([]float64, length)
	for i := 1; i < length; i++ {
		if up := highs[i] - highs[i-1]; up > 0 {
			plusDM[i] = up
		}
		if down := lows[i-1] - lows[i]; down > 0 {
			minusDM[i] = down
		}
	}

	atr := CalculateATR(highs, lows, closes, period)
	smPlus := wilderSmooth(plusDM, period)
	smMinus := wilderSmooth(minusDM, period)

	dx := make([]float64, length)
	for i := 0; i < length; i++ {
		if atr[i] <= 0 {
			continue
		}
		plusDI := 100 * smPlus[i] / atr[i]
		minusDI := 100 * smMinus[i] / atr[i]
		if sum := plusDI + minusDI; sum > 0 {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
		}
	}

	return wilderSmooth(dx, period)
}
