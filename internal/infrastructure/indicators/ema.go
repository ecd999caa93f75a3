package indicators

// CalculateEMA computes the Exponential Moving Average with smoothing
// factor 2/(period+1). The series is seeded with the first value, so every
// index has a defined EMA even when the series is shorter than the period.
func CalculateEMA(values []float64, period int) []float64 {
	ema := make([]float64, len(values))
	if len(values) == 0 || period < 1 {
		return ema
	}

	k := 2.0 / (float64(period) + 1.0)

	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = values[i]*k + ema[i-1]*(1-k)
	}

	return ema
}
