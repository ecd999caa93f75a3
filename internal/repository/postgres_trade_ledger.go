package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"signals-backend/internal/domain"
)

// PostgresTradeStore keeps the trade ledger in the signal_trades table.
// Save replaces the whole table in one transaction, matching the
// whole-ledger snapshot semantics of the file store.
type PostgresTradeStore struct {
	pool *pgxpool.Pool
}

func NewPostgresTradeStore(pool *pgxpool.Pool) *PostgresTradeStore {
	return &PostgresTradeStore{pool: pool}
}

func (s *PostgresTradeStore) Load() ([]domain.Trade, error) {
	rows, err := s.pool.Query(context.Background(), `
		select symbol, timeframe, entry, stop_loss, tp1, tp2,
			status, created_at, last_update, last_price, pnl_pct
		from signal_trades
		order by id
	`)
	if err != nil {
		return []domain.Trade{}, nil
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		var t domain.Trade
		var status string
		if err := rows.Scan(
			&t.Symbol, &t.Timeframe, &t.Entry, &t.StopLoss, &t.TP1, &t.TP2,
			&status, &t.CreatedAt, &t.LastUpdate, &t.LastPrice, &t.PnlPct,
		); err != nil {
			continue
		}
		t.Status = domain.TradeStatus(status)
		trades = append(trades, t)
	}
	return trades, nil
}

func (s *PostgresTradeStore) Save(trades []domain.Trade) error {
	ctx := context.Background()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `truncate table signal_trades restart identity`); err != nil {
		return err
	}

	if len(trades) > 0 {
		batch := &pgx.Batch{}
		for _, t := range trades {
			batch.Queue(`
				insert into signal_trades(
					symbol, timeframe, entry, stop_loss, tp1, tp2,
					status, created_at, last_update, last_price, pnl_pct
				) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			`,
				t.Symbol, t.Timeframe, t.Entry, t.StopLoss, t.TP1, t.TP2,
				string(t.Status), t.CreatedAt, t.LastUpdate, t.LastPrice, t.PnlPct,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
