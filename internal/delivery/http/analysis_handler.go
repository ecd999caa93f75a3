package http

import (
	"encoding/json"
	"net/http"

	"signals-backend/internal/domain"
)

// AnalysisHandler serves the latest scan results.
type AnalysisHandler struct {
	results domain.ResultRepository
}

func NewAnalysisHandler(results domain.ResultRepository) *AnalysisHandler {
	return &AnalysisHandler{results: results}
}

// GetAnalyses handles GET /api/analyses
func (h *AnalysisHandler) GetAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, h.results.LatestResult())
}

// GetAlerts handles GET /api/alerts
func (h *AnalysisHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	alerts := h.results.LatestResult().Alerts
	if alerts == nil {
		alerts = []domain.Analysis{}
	}
	writeJSON(w, alerts)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
