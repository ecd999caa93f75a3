package http

import (
	"encoding/json"
	"net/http"
	"time"

	"signals-backend/internal/repository"
)

// TokenHandler registers device tokens for push notifications.
type TokenHandler struct {
	devices *repository.DeviceRegistry
}

func NewTokenHandler(devices *repository.DeviceRegistry) *TokenHandler {
	return &TokenHandler{devices: devices}
}

type tokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// Register handles POST /api/tokens
func (h *TokenHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.devices.Register(req.Token, req.Platform, time.Now().UTC())
	w.WriteHeader(http.StatusNoContent)
}

// Unregister handles POST /api/tokens/unregister
func (h *TokenHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.devices.Remove(req.Token)
	w.WriteHeader(http.StatusNoContent)
}
