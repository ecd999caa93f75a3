package repository

import (
	"errors"

	"signals-backend/internal/domain"
)

// MirroredTradeStore reads from the primary store and writes every snapshot
// to both. The file ledger stays the source of truth; the mirror (Postgres)
// serves querying and dashboards.
type MirroredTradeStore struct {
	primary domain.TradeStore
	mirror  domain.TradeStore
}

func NewMirroredTradeStore(primary, mirror domain.TradeStore) *MirroredTradeStore {
	return &MirroredTradeStore{primary: primary, mirror: mirror}
}

func (s *MirroredTradeStore) Load() ([]domain.Trade, error) {
	return s.primary.Load()
}

func (s *MirroredTradeStore) Save(trades []domain.Trade) error {
	return errors.Join(s.primary.Save(trades), s.mirror.Save(trades))
}
