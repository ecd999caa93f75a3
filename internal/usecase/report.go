package usecase

import (
	"fmt"
	"strings"

	"signals-backend/internal/domain"
)

const watchlistReportLimit = 8

// BuildReport renders one scan cycle as the chat report: market summary,
// trade transitions, compact signal blocks, watchlist. Plain text; the
// delivery adapter handles chunking.
func BuildReport(result *domain.ScanResult, transitions []string) string {
	var b strings.Builder

	sum := result.Summary
	updatedAt := sum.GeneratedAt.Format("2006-01-02 15:04 UTC")

	b.WriteString("📈 CRYPTO SIGNALS\n")
	fmt.Fprintf(&b, "Updated: %s | Timeframe: %s\n", updatedAt, sum.Timeframe)
	fmt.Fprintf(&b, "Pairs: %d | Signals: %d | Avg confidence: %.0f/100\n",
		sum.Total, sum.AlertCount, sum.AvgConfidence)
	fmt.Fprintf(&b, "Uptrend: %d/%d | RSI<30: %d/%d | MACD+: %d/%d\n",
		sum.UptrendCount, sum.Total, sum.OversoldCount, sum.Total, sum.MACDPositive, sum.Total)

	if len(transitions) > 0 {
		b.WriteString("\n📈 Trade updates:\n")
		for _, u := range transitions {
			b.WriteString(u)
			b.WriteByte('\n')
		}
	}

	if len(result.Alerts) > 0 {
		fmt.Fprintf(&b, "\nSignals found: %d\n", len(result.Alerts))
		for _, a := range result.Alerts {
			b.WriteString(formatSignalCompact(a, updatedAt))
			b.WriteByte('\n')
		}
	} else if len(transitions) == 0 {
		b.WriteString("\nNo signals today.\n")
	}

	if len(result.Watchlist) > 0 {
		b.WriteString("\n👀 Watchlist (score 50-74):\n")
		for i, a := range result.Watchlist {
			if i >= watchlistReportLimit {
				break
			}
			fmt.Fprintf(&b, "- %s: Conf %d/100 | RSI %.1f | %s | EMA %s | Vol %+.0f%%\n",
				a.Symbol, a.Confidence, a.RSI, macdLabel(a), emaLabel(a), a.VolumeIncreasePct)
		}
	}

	return b.String()
}

// formatSignalCompact is the 4-line signal block used in chat reports.
func formatSignalCompact(a domain.Analysis, updatedAt string) string {
	trendArrow := "↓"
	if a.InUptrend {
		trendArrow = "↑"
	}

	lines := []string{
		fmt.Sprintf("• %s [%s] — Conf %d/100 %s | %s",
			a.Symbol, a.Timeframe, a.Confidence, a.SignalStrength, updatedAt),
		fmt.Sprintf("  Price %.2f | EMA200 %s | RSI %.1f | %s | Vol %+.0f%% | ADX %.0f",
			a.Price, trendArrow, a.RSI, macdLabel(a), a.VolumeIncreasePct, a.ADX),
		fmt.Sprintf("  Entry %.2f | Stop %.2f | TP1 %.2f | TP2 %.2f | R/R %.2f",
			a.Entry, a.StopLoss, a.TP1, a.TP2, a.RatioTP1),
		fmt.Sprintf("  Sup %.2f | Res %.2f", a.Support, a.Resistance),
	}
	return strings.Join(lines, "\n")
}

func macdLabel(a domain.Analysis) string {
	label := "MACD-"
	if a.MACDPositive {
		label = "MACD+"
	}
	if a.MACDCrossover {
		label += " x↑"
	}
	return label
}

func emaLabel(a domain.Analysis) string {
	if a.EMAOrder {
		return "20>50>200"
	}
	return "mixed"
}
