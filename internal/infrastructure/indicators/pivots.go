package indicators

// FindPivotLows returns the lows that are strictly below both immediate
// neighbors. Boundary bars cannot be pivots.
func FindPivotLows(lows []float64) []float64 {
	var pivots []float64
	for i := 1; i < len(lows)-1; i++ {
		if lows[i] < lows[i-1] && lows[i] < lows[i+1] {
			pivots = append(pivots, lows[i])
		}
	}
	return pivots
}

// FindPivotHighs returns the highs that are strictly above both immediate
// neighbors.
func FindPivotHighs(highs []float64) []float64 {
	var pivots []float64
	for i := 1; i < len(highs)-1; i++ {
		if highs[i] > highs[i-1] && highs[i] > highs[i+1] {
			pivots = append(pivots, highs[i])
		}
	}
	return pivots
}

// SupportResistance locates the nearest pivot support and resistance within
// the trailing window. Support is the highest pivot low (the level closest
// below price); resistance is the lowest pivot high. When the window holds
// no pivots the window extremes are used instead.
func SupportResistance(highs, lows []float64, window int) (support, resistance float64) {
	if len(lows) == 0 || len(highs) == 0 {
		return 0, 0
	}
	if window > len(lows) {
		window = len(lows)
	}

	recentLows := lows[len(lows)-window:]
	recentHighs := highs[len(highs)-window:]

	pivotLows := FindPivotLows(recentLows)
	pivotHighs := FindPivotHighs(recentHighs)

	if len(pivotLows) > 0 {
		support = pivotLows[0]
		for _, p := range pivotLows[1:] {
			if p > support {
				support = p
			}
		}
	} else {
		support = recentLows[0]
		for _, l := range recentLows[1:] {
			if l < support {
				support = l
			}
		}
	}

	if len(pivotHighs) > 0 {
		resistance = pivotHighs[0]
		for _, p := range pivotHighs[1:] {
			if p < resistance {
				resistance = p
			}
		}
	} else {
		resistance = recentHighs[0]
		for _, h := range recentHighs[1:] {
			if h > resistance {
				resistance = h
			}
		}
	}

	return support, resistance
}
