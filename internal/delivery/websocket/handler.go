package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"signals-backend/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler streams the latest scan result to connected clients.
type Handler struct {
	results domain.ResultRepository
	log     zerolog.Logger
}

func NewHandler(results domain.ResultRepository, logger zerolog.Logger) *Handler {
	return &Handler{results: results, log: logger}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.log.Debug().Str("remote", r.RemoteAddr).Msg("websocket client connected")

	// Initial snapshot, then push on an interval.
	if err := conn.WriteJSON(h.results.LatestResult()); err != nil {
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(h.results.LatestResult()); err != nil {
			h.log.Debug().Err(err).Msg("websocket client disconnected")
			return
		}
	}
}
