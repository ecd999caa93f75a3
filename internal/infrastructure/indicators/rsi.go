package indicators

// CalculateRSI computes the Relative Strength Index over a simple trailing
// window: average gain and average loss are plain rolling means of the last
// `period` deltas, not Wilder-smoothed. The first defined value is at index
// `period`.
//
// When the window holds no losses the RS ratio is undefined; the RSI is set
// to 100, the limit of the formula as avgLoss approaches zero.
func CalculateRSI(closes []float64, period int) []float64 {
	rsi := make([]float64, len(closes))
	if len(closes) < period+1 || period < 1 {
		return rsi
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	var sumGain, sumLoss float64
	for i := 1; i < len(closes); i++ {
		sumGain += gains[i]
		sumLoss += losses[i]
		if i > period {
			sumGain -= gains[i-period]
			sumLoss -= losses[i-period]
		}
		if i < period {
			continue
		}

		avgLoss := sumLoss / float64(period)
		if avgLoss == 0 {
			rsi[i] = 100
			continue
		}
		avgGain := sumGain / float64(period)
		rs := avgGain / avgLoss
		rsi[i] = 100 - 100/(1+rs)
	}

	return rsi
}
