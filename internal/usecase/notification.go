package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"signals-backend/internal/domain"
	"signals-backend/internal/infrastructure/fcm"
	"signals-backend/internal/infrastructure/telegram"
	"signals-backend/internal/repository"
)

// Notifier delivers scan outcomes to the outside world: push notifications
// for fresh alerts and a Telegram report per cycle. The core hands it plain
// values; all network I/O lives here.
type Notifier struct {
	fcmClient *fcm.Client
	tgClient  *telegram.Client
	devices   *repository.DeviceRegistry
	cooldown  time.Duration

	mu       sync.Mutex
	notified map[string]time.Time
	log      zerolog.Logger
}

func NewNotifier(
	fcmClient *fcm.Client,
	tgClient *telegram.Client,
	devices *repository.DeviceRegistry,
	cooldown time.Duration,
	logger zerolog.Logger,
) *Notifier {
	return &Notifier{
		fcmClient: fcmClient,
		tgClient:  tgClient,
		devices:   devices,
		cooldown:  cooldown,
		notified:  make(map[string]time.Time),
		log:       logger,
	}
}

// Notify pushes the run's alerts and sends the cycle report.
func (n *Notifier) Notify(result *domain.ScanResult, transitions []string) {
	n.pushAlerts(result.Alerts)
	n.sendReport(result, transitions)
}

// pushAlerts sends one push per alerted symbol, throttled by a per-symbol
// cooldown so repeated cycles do not spam the same signal.
func (n *Notifier) pushAlerts(alerts []domain.Analysis) {
	if n.fcmClient == nil || !n.fcmClient.IsEnabled() {
		return
	}
	tokens := n.devices.Tokens()
	if len(tokens) == 0 {
		return
	}

	now := time.Now()
	for _, a := range alerts {
		n.mu.Lock()
		last, seen := n.notified[a.Symbol]
		n.mu.Unlock()
		if seen && now.Sub(last) < n.cooldown {
			continue
		}

		title := fmt.Sprintf("🚀 %s buy signal (%s)", a.Symbol, a.SignalStrength)
		body := fmt.Sprintf("Conf %d/100 | Price %.2f | Entry %.2f | Stop %.2f | TP1 %.2f | R/R %.2f",
			a.Confidence, a.Price, a.Entry, a.StopLoss, a.TP1, a.RatioTP1)
		data := map[string]string{
			"symbol":     a.Symbol,
			"timeframe":  a.Timeframe,
			"confidence": fmt.Sprintf("%d", a.Confidence),
			"entry":      fmt.Sprintf("%.8f", a.Entry),
			"stop_loss":  fmt.Sprintf("%.8f", a.StopLoss),
			"tp1":        fmt.Sprintf("%.8f", a.TP1),
			"tp2":        fmt.Sprintf("%.8f", a.TP2),
		}

		if err := n.fcmClient.SendMulticast(tokens, title, body, data); err != nil {
			n.log.Error().Err(err).Str("symbol", a.Symbol).Msg("push notification failed")
			continue
		}

		n.mu.Lock()
		n.notified[a.Symbol] = now
		n.mu.Unlock()
	}

	// Drop stale cooldown entries.
	n.mu.Lock()
	for symbol, ts := range n.notified {
		if now.Sub(ts) > n.cooldown*2 {
			delete(n.notified, symbol)
		}
	}
	n.mu.Unlock()
}

func (n *Notifier) sendReport(result *domain.ScanResult, transitions []string) {
	if n.tgClient == nil || !n.tgClient.Enabled() {
		return
	}

	text := BuildReport(result, transitions)
	if strings.TrimSpace(text) == "" {
		return
	}
	if err := n.tgClient.SendMessage(text); err != nil {
		n.log.Error().Err(err).Msg("telegram report failed")
	}
}
