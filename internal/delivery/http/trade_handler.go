package http

import (
	"encoding/json"
	"net/http"
	"time"

	"signals-backend/internal/domain"
	"signals-backend/internal/infrastructure/signalparse"
	"signals-backend/internal/usecase"
)

// TradeHandler exposes the trade ledger and manual signal entry.
type TradeHandler struct {
	tracker *usecase.Tracker
}

func NewTradeHandler(tracker *usecase.Tracker) *TradeHandler {
	return &TradeHandler{tracker: tracker}
}

// GetOpenTrades handles GET /api/trades/open
func (h *TradeHandler) GetOpenTrades(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trades := h.tracker.OpenTrades()
	if trades == nil {
		trades = []domain.Trade{}
	}
	writeJSON(w, trades)
}

// GetAllTrades handles GET /api/trades
func (h *TradeHandler) GetAllTrades(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, h.tracker.AllTrades())
}

// CreateSignal handles POST /api/signals: manual entry of a trade with
// user-chosen levels, the API counterpart of the desktop entry form.
func (h *TradeHandler) CreateSignal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var trade domain.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.tracker.AddManualTrade(trade, time.Now().UTC())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.tracker.Persist(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, created)
}

// ParseSignal handles POST /api/signals/parse: extracts a trade plan from a
// pasted free-text channel message.
func (h *TradeHandler) ParseSignal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sig := signalparse.Parse(req.Text)
	if sig == nil {
		http.Error(w, "No signal found in text", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, sig)
}
