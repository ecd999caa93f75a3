package usecase

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signals-backend/internal/config"
	"signals-backend/internal/domain"
)

type stubMarket struct {
	bars map[string][]domain.Bar
	errs map[string]error
}

func (s *stubMarket) GetBars(symbol, interval string, limit int) ([]domain.Bar, error) {
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	bars, ok := s.bars[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return bars, nil
}

func scannerConfig(symbols ...string) *config.Config {
	cfg := config.Default()
	cfg.Universe = []config.Category{{Name: "TEST", Symbols: symbols}}
	cfg.CustomSymbols = nil
	cfg.Scan.Concurrency = 2
	return cfg
}

func newTestScanner(cfg *config.Config, market domain.MarketDataSource) *Scanner {
	return NewScanner(
		cfg,
		market,
		NewAnalyzer(cfg.Scan.MinBars, cfg.Scan.PivotWindow, DefaultScoreConfig()),
		nil, nil, nil,
		zerolog.Nop(),
	)
}

func TestScanUniverse_OneFailureDoesNotAbortTheScan(t *testing.T) {
	bars := makeBars(rampCloses(210))
	market := &stubMarket{
		bars: map[string][]domain.Bar{
			"AAAUSDT": bars,
			"BBBUSDT": bars,
		},
		errs: map[string]error{
			"CCCUSDT": errors.New("binance: 451"),
		},
	}

	scanner := newTestScanner(scannerConfig("AAA", "BBB", "CCC"), market)
	result, err := scanner.ScanUniverse()
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.Total)
	symbols := []string{result.Analyses[0].Symbol, result.Analyses[1].Symbol}
	assert.ElementsMatch(t, []string{"AAAUSDT", "BBBUSDT"}, symbols)
}

func TestScanUniverse_ShortHistoryIsSkippedNotFatal(t *testing.T) {
	market := &stubMarket{
		bars: map[string][]domain.Bar{
			"AAAUSDT": makeBars(rampCloses(210)),
			"BBBUSDT": makeBars(rampCloses(10)), // freshly listed
		},
	}

	scanner := newTestScanner(scannerConfig("AAA", "BBB"), market)
	result, err := scanner.ScanUniverse()
	require.NoError(t, err)

	require.Equal(t, 1, result.Summary.Total)
	assert.Equal(t, "AAAUSDT", result.Analyses[0].Symbol)
}

func TestScanUniverse_EmptyUniverseFails(t *testing.T) {
	scanner := newTestScanner(scannerConfig(), &stubMarket{})

	_, err := scanner.ScanUniverse()
	assert.EqualError(t, err, "universe is empty")
}

func TestScanUniverse_QuoteSuffixNotDoubled(t *testing.T) {
	market := &stubMarket{
		bars: map[string][]domain.Bar{
			"BTCUSDT": makeBars(rampCloses(210)),
		},
	}

	// The custom list may already carry the full pair name.
	scanner := newTestScanner(scannerConfig("BTCUSDT"), market)
	result, err := scanner.ScanUniverse()
	require.NoError(t, err)
	require.Equal(t, 1, result.Summary.Total)
	assert.Equal(t, "BTCUSDT", result.Analyses[0].Symbol)
}

func TestScanUniverse_SortedByConfidenceThenSymbol(t *testing.T) {
	strong := makeBars(rampCloses(210))
	weak := make([]domain.Bar, 0, 210)
	closes := rampCloses(210)
	// Flip the tail downward so the series finishes under its long EMA.
	for i, c := range closes {
		if i > 150 {
			c = closes[150] - 1.5*float64(i-150)
		}
		weak = append(weak, makeBars([]float64{c})[0])
	}

	market := &stubMarket{
		bars: map[string][]domain.Bar{
			"AAAUSDT": strong,
			"BBBUSDT": weak,
			"CCCUSDT": strong,
		},
	}

	scanner := newTestScanner(scannerConfig("AAA", "BBB", "CCC"), market)
	result, err := scanner.ScanUniverse()
	require.NoError(t, err)
	require.Equal(t, 3, result.Summary.Total)

	for i := 1; i < len(result.Analyses); i++ {
		prev, cur := result.Analyses[i-1], result.Analyses[i]
		ordered := prev.Confidence > cur.Confidence ||
			(prev.Confidence == cur.Confidence && prev.Symbol < cur.Symbol)
		assert.True(t, ordered, "analyses must sort by confidence desc, then symbol")
	}
	// The equal-confidence twins tie-break alphabetically.
	assert.Equal(t, "AAAUSDT", result.Analyses[0].Symbol)
	assert.Equal(t, "CCCUSDT", result.Analyses[1].Symbol)
}

func TestBuildResult_PartitionsAlertsAndWatchlist(t *testing.T) {
	scanner := newTestScanner(scannerConfig("AAA"), &stubMarket{})

	analyses := []domain.Analysis{
		{Symbol: "A", Confidence: 90, ShouldAlert: true, InUptrend: true},
		{Symbol: "B", Confidence: 74},
		{Symbol: "C", Confidence: 50},
		{Symbol: "D", Confidence: 49},
		{Symbol: "E", Confidence: 80}, // strong but gated out of alerting
	}

	result := scanner.buildResult(analyses)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, "A", result.Alerts[0].Symbol)

	// Watchlist is the 50..74 band regardless of alert status.
	require.Len(t, result.Watchlist, 2)
	assert.Equal(t, "B", result.Watchlist[0].Symbol)
	assert.Equal(t, "C", result.Watchlist[1].Symbol)

	assert.Equal(t, 5, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.AlertCount)
	assert.Equal(t, 1, result.Summary.UptrendCount)
	assert.InDelta(t, (90+74+50+49+80)/5.0, result.Summary.AvgConfidence, 1e-9)
}
