package domain

import "time"

// Bar is a single OHLCV candle. Series are ordered ascending by OpenTime
// with unique timestamps and are never mutated after parsing.
type Bar struct {
	OpenTime time.Time `json:"openTime"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// SignalStrength labels how convincing a setup looks. Informational only:
// the alert gate works on the raw confidence score.
type SignalStrength string

const (
	StrengthForte    SignalStrength = "FORTE"
	StrengthModerado SignalStrength = "MODERADO"
	StrengthFraco    SignalStrength = "FRACO"
)

// Analysis is the full technical read of one symbol on one timeframe.
// Produced fresh each scan and never mutated afterwards.
type Analysis struct {
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	Price     float64 `json:"price"`

	EMA20      float64 `json:"ema20"`
	EMA50      float64 `json:"ema50"`
	EMA200     float64 `json:"ema200"`
	MACD       float64 `json:"macd"`
	SignalLine float64 `json:"signalLine"`
	RSI        float64 `json:"rsi"`
	ATR        float64 `json:"atr"`
	ADX        float64 `json:"adx"`

	Support           float64 `json:"support"`
	Resistance        float64 `json:"resistance"`
	VolumeIncreasePct float64 `json:"volumeIncreasePct"`

	InUptrend      bool `json:"inUptrend"`
	EMAOrder       bool `json:"emaOrder"`
	MACDPositive   bool `json:"macdPositive"`
	MACDCrossover  bool `json:"macdCrossover"`
	RSIHealthy     bool `json:"rsiHealthy"`
	RSIOversold    bool `json:"rsiOversold"`
	RSIGaining     bool `json:"rsiGaining"`
	TestingSupport bool `json:"testingSupport"`

	Entry     float64 `json:"entry"`
	StopLoss  float64 `json:"stopLoss"`
	TP1       float64 `json:"tp1"`
	TP2       float64 `json:"tp2"`
	Risk      float64 `json:"risk"`
	RewardTP1 float64 `json:"rewardTp1"`
	RewardTP2 float64 `json:"rewardTp2"`
	RatioTP1  float64 `json:"ratioTp1"`
	RatioTP2  float64 `json:"ratioTp2"`

	Confidence     int            `json:"confidence"`
	SignalStrength SignalStrength `json:"signalStrength"`
	ShouldAlert    bool           `json:"shouldAlert"`
}

// ScanSummary aggregates one completed run for reporting.
type ScanSummary struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	Timeframe     string    `json:"timeframe"`
	Total         int       `json:"total"`
	AlertCount    int       `json:"alertCount"`
	AvgConfidence float64   `json:"avgConfidence"`
	UptrendCount  int       `json:"uptrendCount"`
	OversoldCount int       `json:"oversoldCount"`
	MACDPositive  int       `json:"macdPositive"`
}

// ScanResult is the orchestrator-owned outcome of one run over the universe.
// Watchlist holds analyses scoring 50-74, sorted by confidence descending.
type ScanResult struct {
	Analyses  []Analysis  `json:"analyses"`
	Alerts    []Analysis  `json:"alerts"`
	Watchlist []Analysis  `json:"watchlist"`
	Summary   ScanSummary `json:"summary"`
}
