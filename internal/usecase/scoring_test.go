package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"signals-backend/internal/domain"
)

func TestScore_AllConditionsMet(t *testing.T) {
	a := &domain.Analysis{
		InUptrend:         true,
		EMAOrder:          true,
		MACDPositive:      true,
		MACDCrossover:     true,
		RSIHealthy:        true,
		RSIGaining:        true,
		TestingSupport:    true,
		VolumeIncreasePct: 40,
		ADX:               30,
		RatioTP1:          1.5,
	}

	ApplyScore(a, DefaultScoreConfig())

	// 20+15+15+10+10+10+10+5+10+5; the sum is intentionally not capped at 100.
	assert.Equal(t, 110, a.Confidence)
	assert.Equal(t, domain.StrengthForte, a.SignalStrength)
	assert.True(t, a.ShouldAlert)
}

func TestScore_NothingMetGoesNegative(t *testing.T) {
	a := &domain.Analysis{
		VolumeIncreasePct: -40, // drop penalty
		ADX:               10,  // weak trend penalty
	}

	ApplyScore(a, DefaultScoreConfig())

	assert.Equal(t, -10, a.Confidence)
	assert.Equal(t, domain.StrengthFraco, a.SignalStrength)
	assert.False(t, a.ShouldAlert)
}

func TestScore_ADXBandsAreExclusive(t *testing.T) {
	cfg := DefaultScoreConfig()

	strong := &domain.Analysis{ADX: 25}
	assert.Equal(t, 10, Score(strong, cfg))

	neutral := &domain.Analysis{ADX: 20}
	assert.Equal(t, 0, Score(neutral, cfg))

	weak := &domain.Analysis{ADX: 14.9}
	assert.Equal(t, -5, Score(weak, cfg))
}

func TestApplyScore_AlertNeedsUptrend(t *testing.T) {
	// 85 points without the trend condition: confident, but counter-trend
	// entries never alert.
	a := &domain.Analysis{
		EMAOrder:       true, // 15
		MACDPositive:   true, // 15
		MACDCrossover:  true, // 10
		RSIHealthy:     true, // 10
		RSIGaining:     true, // 10
		TestingSupport: true, // 10
		ADX:            30,   // 10
		RatioTP1:       1.2,  // 5
	}

	ApplyScore(a, DefaultScoreConfig())

	assert.Equal(t, 85, a.Confidence)
	assert.Equal(t, domain.StrengthForte, a.SignalStrength)
	assert.False(t, a.ShouldAlert)
}

func TestApplyScore_AlertNeedsViableRatio(t *testing.T) {
	a := &domain.Analysis{
		InUptrend:      true,
		EMAOrder:       true,
		MACDPositive:   true,
		MACDCrossover:  true,
		RSIHealthy:     true,
		TestingSupport: true,
		ADX:            30,
		RatioTP1:       0.5,
	}

	ApplyScore(a, DefaultScoreConfig())

	assert.GreaterOrEqual(t, a.Confidence, 70)
	assert.False(t, a.ShouldAlert, "reward below 1:1 must not alert")
}

func TestApplyScore_StrengthBands(t *testing.T) {
	cfg := DefaultScoreConfig()

	// 20+15+15+10+10+5 = 75, right on the FORTE boundary.
	forte := &domain.Analysis{
		InUptrend:    true,
		EMAOrder:     true,
		MACDPositive: true,
		RSIHealthy:   true,
		RSIGaining:   true,
		RatioTP1:     1.0,
		ADX:          20,
	}
	ApplyScore(forte, cfg)
	assert.Equal(t, 75, forte.Confidence)
	assert.Equal(t, domain.StrengthForte, forte.SignalStrength)

	// 20+15+15+10 = 60, right on the MODERADO boundary.
	moderado := &domain.Analysis{
		InUptrend:     true,
		EMAOrder:      true,
		MACDPositive:  true,
		MACDCrossover: true,
		ADX:           20,
	}
	ApplyScore(moderado, cfg)
	assert.Equal(t, 60, moderado.Confidence)
	assert.Equal(t, domain.StrengthModerado, moderado.SignalStrength)

	// 20+15+15+10-5 = 55, one condition short of MODERADO.
	fraco := &domain.Analysis{
		InUptrend:     true,
		EMAOrder:      true,
		MACDPositive:  true,
		MACDCrossover: true,
		ADX:           10,
	}
	ApplyScore(fraco, cfg)
	assert.Equal(t, 55, fraco.Confidence)
	assert.Equal(t, domain.StrengthFraco, fraco.SignalStrength)
}
