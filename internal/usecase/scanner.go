package usecase

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"signals-backend/internal/config"
	"signals-backend/internal/domain"
)

// Scanner runs the analysis pipeline over the configured universe and feeds
// the results into the result repository, the trade tracker and the
// notifier. One cycle is batch, run-to-completion; only the per-symbol
// fetch+analyze step fans out.
type Scanner struct {
	cfg      *config.Config
	market   domain.MarketDataSource
	analyzer *Analyzer
	results  domain.ResultRepository
	tracker  *Tracker
	notifier *Notifier
	log      zerolog.Logger
}

func NewScanner(
	cfg *config.Config,
	market domain.MarketDataSource,
	analyzer *Analyzer,
	results domain.ResultRepository,
	tracker *Tracker,
	notifier *Notifier,
	logger zerolog.Logger,
) *Scanner {
	return &Scanner{
		cfg:      cfg,
		market:   market,
		analyzer: analyzer,
		results:  results,
		tracker:  tracker,
		notifier: notifier,
		log:      logger,
	}
}

// Run scans immediately and then on every tick. Cycles run sequentially:
// the tracker mutates one ledger per run and persists once at the end.
func (s *Scanner) Run() {
	ticker := time.NewTicker(s.cfg.ScanPeriod())
	defer ticker.Stop()

	s.process()
	for range ticker.C {
		s.process()
	}
}

func (s *Scanner) process() {
	start := time.Now()
	s.log.Info().Msg("starting scan cycle")

	result, err := s.ScanUniverse()
	if err != nil {
		s.log.Error().Err(err).Msg("scan failed")
		return
	}

	s.results.SaveResult(*result)

	// Update existing trades with current prices, then open trades for the
	// fresh alerts. Order matters: an alert fired this run must not be
	// advanced by the same run's price.
	transitions := s.tracker.UpdateWithAnalyses(result.Analyses, result.Summary.GeneratedAt)
	for _, alert := range result.Alerts {
		s.tracker.AddTrade(alert, result.Summary.GeneratedAt)
	}
	if err := s.tracker.Persist(); err != nil {
		s.log.Error().Err(err).Msg("persist trade ledger")
	}

	if s.notifier != nil {
		s.notifier.Notify(result, transitions)
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Int("analyzed", result.Summary.Total).
		Int("alerts", result.Summary.AlertCount).
		Int("transitions", len(transitions)).
		Msg("scan cycle completed")
}

// ScanUniverse analyzes every symbol in the merged universe. A failure on
// one symbol is logged and skipped; it never aborts the rest of the scan.
// The only scan-level failure is an empty universe.
func (s *Scanner) ScanUniverse() (*domain.ScanResult, error) {
	universe := s.cfg.MergedUniverse()

	type target struct {
		category string
		symbol   string
	}
	var targets []target
	for _, cat := range universe {
		for _, base := range cat.Symbols {
			targets = append(targets, target{category: cat.Name, symbol: s.fullSymbol(base)})
		}
	}
	if len(targets) == 0 {
		return nil, errors.New("universe is empty")
	}

	s.log.Info().Int("symbols", len(targets)).Str("interval", s.cfg.Scan.Interval).Msg("scanning universe")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		analyses []domain.Analysis
	)
	sem := make(chan struct{}, s.cfg.Scan.Concurrency)

	for _, tgt := range targets {
		wg.Add(1)
		go func(tgt target) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			bars, err := s.market.GetBars(tgt.symbol, s.cfg.Scan.Interval, s.cfg.Scan.KlineLimit)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", tgt.symbol).Str("category", tgt.category).Msg("skipping symbol: fetch failed")
				return
			}

			analysis, err := s.analyzer.Analyze(tgt.symbol, s.cfg.Scan.Interval, bars)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", tgt.symbol).Str("category", tgt.category).Msg("skipping symbol: analysis unavailable")
				return
			}

			mu.Lock()
			analyses = append(analyses, *analysis)
			mu.Unlock()
		}(tgt)
	}
	wg.Wait()

	sort.Slice(analyses, func(i, j int) bool {
		if analyses[i].Confidence != analyses[j].Confidence {
			return analyses[i].Confidence > analyses[j].Confidence
		}
		return analyses[i].Symbol < analyses[j].Symbol
	})

	return s.buildResult(analyses), nil
}

func (s *Scanner) fullSymbol(base string) string {
	suffix := s.cfg.Scan.QuoteSuffix
	if suffix == "" || strings.HasSuffix(base, suffix) {
		return base
	}
	return base + suffix
}

func (s *Scanner) buildResult(analyses []domain.Analysis) *domain.ScanResult {
	th := s.analyzer.scoring.Thresholds

	result := &domain.ScanResult{
		Analyses: analyses,
		Summary: domain.ScanSummary{
			GeneratedAt: time.Now().UTC(),
			Timeframe:   s.cfg.Scan.Interval,
			Total:       len(analyses),
		},
	}

	confSum := 0
	for _, a := range analyses {
		confSum += a.Confidence
		if a.ShouldAlert {
			result.Alerts = append(result.Alerts, a)
		}
		if a.Confidence >= th.WatchMin && a.Confidence < th.Forte {
			result.Watchlist = append(result.Watchlist, a)
		}
		if a.InUptrend {
			result.Summary.UptrendCount++
		}
		if a.RSIOversold {
			result.Summary.OversoldCount++
		}
		if a.MACDPositive {
			result.Summary.MACDPositive++
		}
	}
	result.Summary.AlertCount = len(result.Alerts)
	if len(analyses) > 0 {
		result.Summary.AvgConfidence = float64(confSum) / float64(len(analyses))
	}

	return result
}
