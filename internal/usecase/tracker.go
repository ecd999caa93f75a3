package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"signals-backend/internal/domain"
)

// Tracker advances persisted trades through their lifecycle as new prices
// arrive: open -> tp1 -> tp2, with the stop check taking priority over
// target checks. Trades are never deleted; terminal trades stay in the
// ledger as history and keep receiving price/pnl refreshes.
type Tracker struct {
	mu     sync.Mutex
	trades []domain.Trade
	store  domain.TradeStore
	log    zerolog.Logger
}

// NewTracker loads the persisted ledger. A ledger that cannot be read
// starts empty; that is recoverable, not fatal.
func NewTracker(store domain.TradeStore, logger zerolog.Logger) *Tracker {
	trades, err := store.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("could not load trade ledger, starting empty")
		trades = nil
	}
	return &Tracker{
		trades: trades,
		store:  store,
		log:    logger,
	}
}

// AddTrade opens a trade from an alerted analysis. It is a no-op when an
// active (open or tp1) trade already exists for the symbol/timeframe key,
// so repeated alerts never duplicate a position.
func (t *Tracker) AddTrade(a domain.Analysis, ts time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.findActive(a.Symbol, a.Timeframe) >= 0 {
		return false
	}

	t.trades = append(t.trades, domain.Trade{
		Symbol:     a.Symbol,
		Timeframe:  a.Timeframe,
		Entry:      a.Entry,
		StopLoss:   a.StopLoss,
		TP1:        a.TP1,
		TP2:        a.TP2,
		Status:     domain.StatusOpen,
		CreatedAt:  ts,
		LastUpdate: ts,
		LastPrice:  a.Entry,
		PnlPct:     0,
	})
	t.log.Info().
		Str("symbol", a.Symbol).
		Str("timeframe", a.Timeframe).
		Float64("entry", a.Entry).
		Float64("stop", a.StopLoss).
		Msg("trade opened")
	return true
}

// AddManualTrade opens a trade from user-entered levels, validating the
// level ordering the lifecycle depends on. Returns the trade as stored,
// with status and timestamps filled in.
func (t *Tracker) AddManualTrade(trade domain.Trade, ts time.Time) (domain.Trade, error) {
	if trade.Symbol == "" {
		return domain.Trade{}, errors.New("symbol is required")
	}
	if !(trade.StopLoss < trade.Entry && trade.Entry < trade.TP1 && trade.TP1 < trade.TP2) {
		return domain.Trade{}, fmt.Errorf("levels must satisfy stop < entry < tp1 < tp2")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.findActive(trade.Symbol, trade.Timeframe) >= 0 {
		return domain.Trade{}, fmt.Errorf("active trade already exists for %s %s", trade.Symbol, trade.Timeframe)
	}

	trade.Status = domain.StatusOpen
	trade.CreatedAt = ts
	trade.LastUpdate = ts
	trade.LastPrice = trade.Entry
	trade.PnlPct = 0
	t.trades = append(t.trades, trade)
	return trade, nil
}

// UpdateWithPrice refreshes the most recent trade for the key with the
// observed price and advances its status when a level is crossed. The stop
// check runs first and can fire from tp1, pre-empting tp2; tp1 is only
// reachable from open. Terminal trades only get their price and pnl
// refreshed. Returns the transition message when the status changed.
func (t *Tracker) UpdateWithPrice(symbol, timeframe string, price float64, ts time.Time) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.findLatest(symbol, timeframe)
	if idx < 0 {
		return "", false
	}
	trade := &t.trades[idx]

	trade.LastPrice = price
	if trade.Entry != 0 {
		trade.PnlPct = (price/trade.Entry - 1) * 100
	}

	if trade.Terminal() {
		return "", false
	}

	status := trade.Status
	newStatus := status
	msg := ""
	switch {
	case price <= trade.StopLoss:
		newStatus = domain.StatusStopped
		pnl := (trade.StopLoss/trade.Entry - 1) * 100
		msg = fmt.Sprintf("⛔ STOP %s [%s]: exit %.2f (%+.2f%%)", trade.Symbol, trade.Timeframe, trade.StopLoss, pnl)
	case price >= trade.TP2:
		newStatus = domain.StatusTP2
		pnl := (trade.TP2/trade.Entry - 1) * 100
		msg = fmt.Sprintf("🎯 TP2 %s [%s]: %.2f (%+.2f%%)", trade.Symbol, trade.Timeframe, trade.TP2, pnl)
	case price >= trade.TP1 && status == domain.StatusOpen:
		newStatus = domain.StatusTP1
		pnl := (trade.TP1/trade.Entry - 1) * 100
		msg = fmt.Sprintf("✅ TP1 %s [%s]: %.2f (%+.2f%%)", trade.Symbol, trade.Timeframe, trade.TP1, pnl)
	}

	if newStatus == status {
		return "", false
	}

	trade.Status = newStatus
	trade.LastUpdate = ts
	t.log.Info().
		Str("symbol", trade.Symbol).
		Str("timeframe", trade.Timeframe).
		Str("status", string(newStatus)).
		Float64("price", price).
		Msg("trade transition")
	return msg, true
}

// UpdateWithAnalyses applies the current prices of a scan to every tracked
// trade and collects the transition messages in order.
func (t *Tracker) UpdateWithAnalyses(analyses []domain.Analysis, ts time.Time) []string {
	var updates []string
	for _, a := range analyses {
		if msg, changed := t.UpdateWithPrice(a.Symbol, a.Timeframe, a.Price, ts); changed {
			updates = append(updates, msg)
		}
	}
	return updates
}

// Persist snapshots the whole ledger. Called once per run, after all
// updates and additions.
func (t *Tracker) Persist() error {
	return t.store.Save(t.AllTrades())
}

// OpenTrades returns the trades still in play (open or tp1).
func (t *Tracker) OpenTrades() []domain.Trade {
	t.mu.Lock()
	defer t.mu.Unlock()

	var open []domain.Trade
	for _, tr := range t.trades {
		if tr.Active() {
			open = append(open, tr)
		}
	}
	return open
}

// AllTrades returns a copy of the full ledger, history included.
func (t *Tracker) AllTrades() []domain.Trade {
	t.mu.Lock()
	defer t.mu.Unlock()

	all := make([]domain.Trade, len(t.trades))
	copy(all, t.trades)
	return all
}

// findActive returns the index of the active trade for the key, or -1.
// At most one trade per key can be active at a time.
func (t *Tracker) findActive(symbol, timeframe string) int {
	for i := len(t.trades) - 1; i >= 0; i-- {
		tr := &t.trades[i]
		if tr.Symbol == symbol && tr.Timeframe == timeframe && tr.Active() {
			return i
		}
	}
	return -1
}

// findLatest returns the index of the most recently created trade for the
// key, terminal or not, or -1.
func (t *Tracker) findLatest(symbol, timeframe string) int {
	for i := len(t.trades) - 1; i >= 0; i-- {
		tr := &t.trades[i]
		if tr.Symbol == symbol && tr.Timeframe == timeframe {
			return i
		}
	}
	return -1
}
