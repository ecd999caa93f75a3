package repository

import (
	"encoding/json"
	"os"

	"signals-backend/internal/domain"
)

// JSONTradeStore persists the trade ledger as a flat JSON array in a single
// file: whole-file read on load, whole-file overwrite on save.
type JSONTradeStore struct {
	path string
}

func NewJSONTradeStore(path string) *JSONTradeStore {
	return &JSONTradeStore{path: path}
}

// Load reads the ledger. A missing or unparseable file yields an empty
// ledger and no error: the tracker always gets to start.
func (s *JSONTradeStore) Load() ([]domain.Trade, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []domain.Trade{}, nil
	}

	var trades []domain.Trade
	if err := json.Unmarshal(data, &trades); err != nil {
		return []domain.Trade{}, nil
	}
	return trades, nil
}

// Save overwrites the ledger file with the full trade list.
func (s *JSONTradeStore) Save(trades []domain.Trade) error {
	if trades == nil {
		trades = []domain.Trade{}
	}
	data, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
