package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the table backing the trade-ledger mirror. No external
// migration tool; the schema is one table.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists signal_trades (
			id bigserial primary key,
			symbol text not null,
			timeframe text not null,
			entry double precision not null,
			stop_loss double precision not null,
			tp1 double precision not null,
			tp2 double precision not null,
			status text not null,
			created_at timestamptz not null,
			last_update timestamptz not null,
			last_price double precision not null,
			pnl_pct double precision not null
		);`,
		`create index if not exists signal_trades_status_idx on signal_trades(status);`,
		`create index if not exists signal_trades_key_idx on signal_trades(symbol, timeframe);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
