package domain

import "time"

// TradeStatus is the lifecycle state of a tracked trade.
// open -> tp1 -> tp2, with stopped reachable from any non-terminal state.
// tp2 and stopped are terminal.
type TradeStatus string

const (
	StatusOpen    TradeStatus = "open"
	StatusTP1     TradeStatus = "tp1"
	StatusTP2     TradeStatus = "tp2"
	StatusStopped TradeStatus = "stopped"
)

// Trade is one tracked signal outcome. Field names follow the persisted
// ledger format. Invariant: StopLoss < Entry < TP1 < TP2.
type Trade struct {
	Symbol     string      `json:"symbol"`
	Timeframe  string      `json:"timeframe"`
	Entry      float64     `json:"entry"`
	StopLoss   float64     `json:"stop_loss"`
	TP1        float64     `json:"tp1"`
	TP2        float64     `json:"tp2"`
	Status     TradeStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	LastUpdate time.Time   `json:"last_update"`
	LastPrice  float64     `json:"last_price"`
	PnlPct     float64     `json:"pnl_pct"`
}

// Active reports whether the trade can still progress (open or tp1).
func (t *Trade) Active() bool {
	return t.Status == StatusOpen || t.Status == StatusTP1
}

// Terminal reports whether the status can never change again.
func (t *Trade) Terminal() bool {
	return t.Status == StatusTP2 || t.Status == StatusStopped
}
