package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Category is a labeled group of symbol bases. Categories are informational
// only; they drive report grouping, not behavior.
type Category struct {
	Name    string   `yaml:"name"`
	Symbols []string `yaml:"symbols"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type ScanConfig struct {
	Interval    string `yaml:"interval"`
	KlineLimit  int    `yaml:"kline_limit"`
	QuoteSuffix string `yaml:"quote_suffix"`
	MinBars     int    `yaml:"min_bars"`
	PivotWindow int    `yaml:"pivot_window"`
	Concurrency int    `yaml:"concurrency"`
	PeriodMin   int    `yaml:"period_minutes"`
}

type LedgerConfig struct {
	Path string `yaml:"path"`
}

type NotifyConfig struct {
	CooldownMin int `yaml:"cooldown_minutes"`
}

// ScoreWeights are the signed contributions of each technical condition.
type ScoreWeights struct {
	Uptrend        int `yaml:"uptrend"`
	EMAOrder       int `yaml:"ema_order"`
	MACDPositive   int `yaml:"macd_positive"`
	MACDCrossover  int `yaml:"macd_crossover"`
	RSIHealthy     int `yaml:"rsi_healthy"`
	RSIGaining     int `yaml:"rsi_gaining"`
	TestingSupport int `yaml:"testing_support"`
	VolumeSpike    int `yaml:"volume_spike"`
	VolumeDrop     int `yaml:"volume_drop"`
	ADXStrong      int `yaml:"adx_strong"`
	ADXWeak        int `yaml:"adx_weak"`
	GoodRatio      int `yaml:"good_ratio"`
}

// ScoreThresholds hold the cutoffs used for labeling, alerting and the
// watchlist band.
type ScoreThresholds struct {
	Alert          int     `yaml:"alert"`
	Forte          int     `yaml:"forte"`
	Moderado       int     `yaml:"moderado"`
	WatchMin       int     `yaml:"watch_min"`
	VolumeSpikePct float64 `yaml:"volume_spike_pct"`
	VolumeDropPct  float64 `yaml:"volume_drop_pct"`
	ADXStrong      float64 `yaml:"adx_strong"`
	ADXWeak        float64 `yaml:"adx_weak"`
	MinRatioTP1    float64 `yaml:"min_ratio_tp1"`
}

// ScoringConfig is the scoring table handed to the engine. Overridable per
// deployment; the defaults are the tuned production values.
type ScoringConfig struct {
	Weights    ScoreWeights    `yaml:"weights"`
	Thresholds ScoreThresholds `yaml:"thresholds"`
}

func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Weights: ScoreWeights{
			Uptrend:        20,
			EMAOrder:       15,
			MACDPositive:   15,
			MACDCrossover:  10,
			RSIHealthy:     10,
			RSIGaining:     10,
			TestingSupport: 10,
			VolumeSpike:    5,
			VolumeDrop:     -5,
			ADXStrong:      10,
			ADXWeak:        -5,
			GoodRatio:      5,
		},
		Thresholds: ScoreThresholds{
			Alert:          70,
			Forte:          75,
			Moderado:       60,
			WatchMin:       50,
			VolumeSpikePct: 30,
			VolumeDropPct:  -30,
			ADXStrong:      25,
			ADXWeak:        15,
			MinRatioTP1:    1.0,
		},
	}
}

// Config is the immutable configuration value passed into the engines.
// Run state lives in the orchestrator, never here.
type Config struct {
	Server        ServerConfig  `yaml:"server"`
	Scan          ScanConfig    `yaml:"scan"`
	Scoring       ScoringConfig `yaml:"scoring"`
	Universe      []Category    `yaml:"universe"`
	CustomSymbols []string      `yaml:"custom_symbols"`
	Ledger        LedgerConfig  `yaml:"ledger"`
	Notify        NotifyConfig  `yaml:"notify"`
}

// Default returns the built-in configuration: the 30-pair crypto universe
// scanned daily against Binance spot.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Scan: ScanConfig{
			Interval:    "1d",
			KlineLimit:  200,
			QuoteSuffix: "USDT",
			MinBars:     30,
			PivotWindow: 30,
			Concurrency: 5,
			PeriodMin:   60,
		},
		Universe: []Category{
			{Name: "BLUE_CHIPS", Symbols: []string{"BTC", "ETH", "BNB", "SOL", "AVAX", "ADA", "DOT"}},
			{Name: "LAYER2", Symbols: []string{"MATIC", "ARB", "OP"}},
			{Name: "DEFI", Symbols: []string{"LINK", "UNI", "AAVE", "MKR"}},
			{Name: "INFRA", Symbols: []string{"ATOM", "NEAR", "ALGO", "FIL", "ICP", "THETA"}},
			{Name: "EXPANSION", Symbols: []string{"STX", "RNDR", "FET", "IMX", "GRT"}},
			{Name: "TRADING", Symbols: []string{"LDO", "INJ", "TIA", "AR", "TON"}},
		},
		Scoring: DefaultScoring(),
		Ledger:  LedgerConfig{Path: "crypto_trades.json"},
		Notify:  NotifyConfig{CooldownMin: 60},
	}
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error: the defaults are a complete configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Scan.MinBars < 1 {
		cfg.Scan.MinBars = 30
	}
	if cfg.Scan.PivotWindow < 3 {
		cfg.Scan.PivotWindow = 30
	}
	if cfg.Scan.Concurrency < 1 {
		cfg.Scan.Concurrency = 1
	}
	if cfg.Scan.PeriodMin < 1 {
		cfg.Scan.PeriodMin = 60
	}

	return cfg, nil
}

// ScanPeriod returns the interval between scan cycles.
func (c *Config) ScanPeriod() time.Duration {
	return time.Duration(c.Scan.PeriodMin) * time.Minute
}

// MergedUniverse returns the configured categories plus a CUSTOM category
// holding the cleaned custom symbols: trimmed, uppercased, deduplicated in
// first-seen order.
func (c *Config) MergedUniverse() []Category {
	universe := make([]Category, len(c.Universe))
	copy(universe, c.Universe)

	cleaned := CleanSymbols(c.CustomSymbols)
	if len(cleaned) > 0 {
		universe = append(universe, Category{Name: "CUSTOM", Symbols: cleaned})
	}
	return universe
}

// CleanSymbols normalizes a user-entered symbol list.
func CleanSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	var cleaned []string
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}
	return cleaned
}
