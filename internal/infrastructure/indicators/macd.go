package indicators

// CalculateMACD computes the MACD line (fast EMA - slow EMA), its signal
// line (EMA of the MACD line) and the histogram (macd - signal).
func CalculateMACD(closes []float64, fast, slow, signalPeriod int) (macd, signal, histogram []float64) {
	emaFast := CalculateEMA(closes, fast)
	emaSlow := CalculateEMA(closes, slow)

	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	signal = CalculateEMA(macd, signalPeriod)

	histogram = make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macd[i] - signal[i]
	}

	return macd, signal, histogram
}
