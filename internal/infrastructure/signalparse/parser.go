package signalparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedSignal is a buy signal extracted from a free-text channel message.
// Stop is nil when the message says to hold instead of naming a price.
type ParsedSignal struct {
	Symbol      string    `json:"symbol"`
	Entry       float64   `json:"entry"`
	Targets     []float64 `json:"targets"`
	Stop        *float64  `json:"stop,omitempty"`
	Leverage    *float64  `json:"leverage,omitempty"`
	RawLeverage string    `json:"rawLeverage,omitempty"`
}

var (
	symRe      = regexp.MustCompile(`(?i)#?([A-Za-z]{2,15})\s*/\s*USDT`)
	entryRe    = regexp.MustCompile(`(?i)Entrada:\s*([\d.]+)`)
	leverageRe = regexp.MustCompile(`(?i)Alavancagem:\s*([^\n]+)`)
	targetsRe  = regexp.MustCompile(`(?i)Alvos:\s*([^\n]+)`)
	stopRe     = regexp.MustCompile(`(?i)Stop\s*Loss:\s*([^\n]+)`)
	numberRe   = regexp.MustCompile(`(\d+)`)
)

// Parse extracts a signal from a message in the channel's format:
//
//	#STORJ / USDT CONFIGURAÇÃO DE COMPRA
//	Entrada: 0.1465
//	Alavancagem: Máx. 10x-20x
//	Alvos: 3% - 20% - 40%
//	Stop Loss: Hold
//
// Returns nil when the message lacks a symbol or an entry price.
func Parse(text string) *ParsedSignal {
	symM := symRe.FindStringSubmatch(text)
	entryM := entryRe.FindStringSubmatch(text)
	if symM == nil || entryM == nil {
		return nil
	}

	entry, err := strconv.ParseFloat(entryM[1], 64)
	if err != nil {
		return nil
	}

	sig := &ParsedSignal{
		Symbol: strings.ToUpper(symM[1]) + "USDT",
		Entry:  entry,
	}

	if levM := leverageRe.FindStringSubmatch(text); levM != nil {
		sig.RawLeverage = strings.TrimSpace(levM[1])
		// Ranges like "10x-20x" collapse to the first, safer value.
		if numM := numberRe.FindStringSubmatch(sig.RawLeverage); numM != nil {
			if lev, err := strconv.ParseFloat(numM[1], 64); err == nil {
				sig.Leverage = &lev
			}
		}
	}

	if tgtM := targetsRe.FindStringSubmatch(text); tgtM != nil {
		sig.Targets = parseTargets(tgtM[1], entry)
	}

	if stopM := stopRe.FindStringSubmatch(text); stopM != nil {
		s := strings.TrimSpace(stopM[1])
		lower := strings.ToLower(s)
		if lower != "hold" && lower != "segurar" {
			if stop, err := strconv.ParseFloat(s, 64); err == nil {
				sig.Stop = &stop
			}
		}
	}

	return sig
}

var targetSplitRe = regexp.MustCompile(`[,\-]\s*`)

// parseTargets converts a percentage list into prices above the entry.
func parseTargets(text string, entry float64) []float64 {
	var targets []float64
	for _, part := range targetSplitRe.Split(text, -1) {
		part = strings.TrimSuffix(strings.TrimSpace(part), "%")
		if part == "" {
			continue
		}
		pct, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		targets = append(targets, entry*(1+pct/100))
	}
	return targets
}
