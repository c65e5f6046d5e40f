package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/repository"
	pkgch "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/clickhouse"
)

// ClickHouseLedgerWriter implements LedgerWriter with multi-row VALUES
// inserts. Only the Kafka ingest path writes; request serving never does.
type ClickHouseLedgerWriter struct {
	db       *sql.DB
	database string
}

// NewClickHouseLedgerWriter creates a ledger writer.
func NewClickHouseLedgerWriter(ch *pkgch.Client, database string) repository.LedgerWriter {
	return &ClickHouseLedgerWriter{db: ch.DB(), database: database}
}

// Chunk size tuned to keep single inserts bounded.
const insertChunk = 2000

func (w *ClickHouseLedgerWriter) InsertTrades(ctx context.Context, trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	for start := 0; start < len(trades); start += insertChunk {
		end := min(start+insertChunk, len(trades))
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, t := range trades[start:end] {
			if t.Account == "" || t.Symbol == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, t.Account, t.Symbol, t.Time, t.Pnl, t.Commission)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s.trades (account, symbol, ts, realized_pnl, commission) VALUES %s",
			w.database, strings.Join(values, ","))
		if _, err := w.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert trades: %w", err)
		}
	}
	return nil
}

func (w *ClickHouseLedgerWriter) InsertTransactions(ctx context.Context, events []models.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}
	values := make([]string, 0, len(events))
	args := make([]interface{}, 0, len(events)*4)
	for _, ev := range events {
		if ev.Account == "" {
			continue
		}
		incomeType := "FUNDING_FEE"
		if ev.Kind == models.KindTransfer {
			incomeType = "TRANSFER"
		}
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, ev.Account, incomeType, ev.Amount, ev.Time)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s.transactions (account, income_type, income, ts) VALUES %s",
		w.database, strings.Join(values, ","))
	if _, err := w.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (w *ClickHouseLedgerWriter) InsertEarnings(ctx context.Context, events []models.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}
	values := make([]string, 0, len(events))
	args := make([]interface{}, 0, len(events)*3)
	for _, ev := range events {
		if ev.Account == "" {
			continue
		}
		values = append(values, "(?, ?, ?)")
		args = append(args, ev.Account, ev.Amount, ev.Time)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s.earnings (account, rewards, ts) VALUES %s",
		w.database, strings.Join(values, ","))
	if _, err := w.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert earnings: %w", err)
	}
	return nil
}

func (w *ClickHouseLedgerWriter) InsertSnapshots(ctx context.Context, snaps []models.BalanceSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	values := make([]string, 0, len(snaps))
	args := make([]interface{}, 0, len(snaps)*3)
	for _, sn := range snaps {
		if sn.Account == "" {
			continue
		}
		values = append(values, "(?, ?, ?)")
		args = append(args, sn.Account, sn.Value, sn.Time)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s.balance_snapshots (account, value, ts) VALUES %s",
		w.database, strings.Join(values, ","))
	if _, err := w.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert snapshots: %w", err)
	}
	return nil
}
