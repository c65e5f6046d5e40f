package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	pkgch "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/clickhouse"
	applogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"
)

// ClickHouseLedgerStore implements LedgerStore backed by ClickHouse.
// Realized trade amounts are normalized to net-of-commission here so nothing
// downstream ever sees gross PnL.
type ClickHouseLedgerStore struct {
	db       *sql.DB
	database string
	l        *applogger.Logger
}

func NewClickHouseLedgerStore(ch *pkgch.Client, database string) *ClickHouseLedgerStore {
	return &ClickHouseLedgerStore{db: ch.DB(), database: database}
}

// SetLogger injects a structured logger.
func (s *ClickHouseLedgerStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseLedgerStore) FetchEvents(ctx context.Context, account string, from, to time.Time) ([]models.LedgerEvent, error) {
	start := time.Now()
	const qtpl = `
        SELECT ts, amount, kind FROM (
            SELECT ts, realized_pnl - commission AS amount, 'realized_trade' AS kind
            FROM %[1]s.trades
            WHERE account = ? AND ts >= ? AND ts <= ?
            UNION ALL
            SELECT ts, income AS amount,
                   if(income_type = 'TRANSFER', 'transfer', 'funding_fee') AS kind
            FROM %[1]s.transactions
            WHERE account = ? AND income_type IN ('TRANSFER', 'FUNDING_FEE') AND ts >= ? AND ts <= ?
            UNION ALL
            SELECT ts, rewards AS amount, 'earning' AS kind
            FROM %[1]s.earnings
            WHERE account = ? AND ts >= ? AND ts <= ?
        )
        ORDER BY ts ASC
    `
	q := fmt.Sprintf(qtpl, s.database)
	rows, err := s.db.QueryContext(ctx, q, account, from, to, account, from, to, account, from, to)
	if err != nil {
		s.logErr("clickhouse fetch_events query error", account, err)
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer rows.Close()

	out := make([]models.LedgerEvent, 0, 256)
	for rows.Next() {
		ev := models.LedgerEvent{Account: account}
		var kind string
		if err := rows.Scan(&ev.Time, &ev.Amount, &kind); err != nil {
			s.logErr("clickhouse fetch_events scan error", account, err)
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Kind = models.EventKind(kind)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		s.logErr("clickhouse fetch_events rows error", account, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse fetch_events ok",
			applogger.String("account", account),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *ClickHouseLedgerStore) FetchTrades(ctx context.Context, account string, from, to time.Time) ([]models.Trade, error) {
	start := time.Now()
	const qtpl = `
        SELECT symbol, ts, realized_pnl, commission
        FROM %s.trades
        WHERE account = ? AND ts >= ? AND ts <= ?
        ORDER BY ts ASC
    `
	q := fmt.Sprintf(qtpl, s.database)
	rows, err := s.db.QueryContext(ctx, q, account, from, to)
	if err != nil {
		s.logErr("clickhouse fetch_trades query error", account, err)
		return nil, fmt.Errorf("fetch trades: %w", err)
	}
	defer rows.Close()

	out := make([]models.Trade, 0, 256)
	for rows.Next() {
		tr := models.Trade{Account: account}
		if err := rows.Scan(&tr.Symbol, &tr.Time, &tr.Pnl, &tr.Commission); err != nil {
			s.logErr("clickhouse fetch_trades scan error", account, err)
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		s.logErr("clickhouse fetch_trades rows error", account, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse fetch_trades ok",
			applogger.String("account", account),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *ClickHouseLedgerStore) LatestSnapshotAt(ctx context.Context, account string, asOf time.Time) (models.BalanceSnapshot, bool, error) {
	const qtpl = `
        SELECT ts, value
        FROM %s.balance_snapshots
        WHERE account = ? AND ts <= ?
        ORDER BY ts DESC
        LIMIT 1
    `
	return s.snapshotRow(ctx, fmt.Sprintf(qtpl, s.database), account, account, asOf)
}

func (s *ClickHouseLedgerStore) EarliestSnapshot(ctx context.Context, account string) (models.BalanceSnapshot, bool, error) {
	const qtpl = `
        SELECT ts, value
        FROM %s.balance_snapshots
        WHERE account = ?
        ORDER BY ts ASC
        LIMIT 1
    `
	return s.snapshotRow(ctx, fmt.Sprintf(qtpl, s.database), account, account)
}

func (s *ClickHouseLedgerStore) snapshotRow(ctx context.Context, q, account string, args ...interface{}) (models.BalanceSnapshot, bool, error) {
	snap := models.BalanceSnapshot{Account: account}
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&snap.Time, &snap.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BalanceSnapshot{}, false, nil
	}
	if err != nil {
		s.logErr("clickhouse snapshot query error", account, err)
		return models.BalanceSnapshot{}, false, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *ClickHouseLedgerStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseLedgerStore) logErr(msg, account string, err error) {
	if s.l != nil {
		s.l.Error(msg,
			applogger.String("account", account),
			applogger.Error(err),
		)
	}
}
