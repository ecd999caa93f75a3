package usecase

import (
	"signals-backend/internal/config"
	"signals-backend/internal/domain"
)

// ScoreConfig is the scoring section of the service configuration: the
// signed weight table plus the labeling/alerting cutoffs.
type ScoreConfig = config.ScoringConfig

// DefaultScoreConfig returns the production scoring table.
func DefaultScoreConfig() ScoreConfig {
	return config.DefaultScoring()
}

// Score sums the condition weights into a confidence value. The sum is not
// clamped: it can run below zero or above 100, and the labels work on the
// raw value.
func Score(a *domain.Analysis, cfg ScoreConfig) int {
	w := cfg.Weights
	th := cfg.Thresholds

	confidence := 0
	if a.InUptrend {
		confidence += w.Uptrend
	}
	if a.EMAOrder {
		confidence += w.EMAOrder
	}
	if a.MACDPositive {
		confidence += w.MACDPositive
	}
	if a.MACDCrossover {
		confidence += w.MACDCrossover
	}
	if a.RSIHealthy {
		confidence += w.RSIHealthy
	}
	if a.RSIGaining {
		confidence += w.RSIGaining
	}
	if a.TestingSupport {
		confidence += w.TestingSupport
	}
	if a.VolumeIncreasePct > th.VolumeSpikePct {
		confidence += w.VolumeSpike
	}
	if a.VolumeIncreasePct < th.VolumeDropPct {
		confidence += w.VolumeDrop
	}
	if a.ADX >= th.ADXStrong {
		confidence += w.ADXStrong
	} else if a.ADX < th.ADXWeak {
		confidence += w.ADXWeak
	}
	if a.RatioTP1 >= th.MinRatioTP1 {
		confidence += w.GoodRatio
	}

	return confidence
}

// ApplyScore fills in Confidence, SignalStrength and ShouldAlert.
// The alert gate is exactly: confidence at the alert cutoff, risk/reward at
// least 1:1 to the first target, and an uptrend. Strength is informational.
func ApplyScore(a *domain.Analysis, cfg ScoreConfig) {
	th := cfg.Thresholds

	a.Confidence = Score(a, cfg)

	switch {
	case a.Confidence >= th.Forte:
		a.SignalStrength = domain.StrengthForte
	case a.Confidence >= th.Moderado:
		a.SignalStrength = domain.StrengthModerado
	default:
		a.SignalStrength = domain.StrengthFraco
	}

	a.ShouldAlert = a.Confidence >= th.Alert &&
		a.RatioTP1 >= th.MinRatioTP1 &&
		a.InUptrend
}
