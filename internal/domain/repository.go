package domain

// MarketDataSource fetches historical bars for a symbol. Implementations
// return an error when data cannot be obtained; the scanner treats that as
// "skip this symbol".
type MarketDataSource interface {
	GetBars(symbol, interval string, limit int) ([]Bar, error)
}

// ResultRepository stores the latest completed scan for the delivery layer.
type ResultRepository interface {
	SaveResult(result ScanResult)
	LatestResult() ScanResult
}

// TradeStore persists the trade ledger as a whole-ledger snapshot.
// Load on a missing or unreadable ledger returns an empty slice, not an
// error: the tracker must always be able to start.
type TradeStore interface {
	Save(trades []Trade) error
	Load() ([]Trade, error)
}
