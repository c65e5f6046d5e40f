package repository

import (
	"context"
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
)

// LedgerStore reads the append-only ledger. All fetches return events in
// ascending timestamp order and an empty slice (not an error) when nothing
// exists in range. Ranges are inclusive on both ends at second granularity.
type LedgerStore interface {
	FetchEvents(ctx context.Context, account string, from, to time.Time) ([]models.LedgerEvent, error)
	FetchTrades(ctx context.Context, account string, from, to time.Time) ([]models.Trade, error)
	LatestSnapshotAt(ctx context.Context, account string, asOf time.Time) (models.BalanceSnapshot, bool, error)
	EarliestSnapshot(ctx context.Context, account string) (models.BalanceSnapshot, bool, error)
	Health(ctx context.Context) error
}

// SnapshotStore reads live per-account state from the fast key-value store.
// Missing or malformed per-account data degrades to zero values; the call as
// a whole fails only when the store itself is unreachable.
type SnapshotStore interface {
	// FetchUnrealized returns account -> live unrealized PnL plus a "total"
	// entry equal to the sum.
	FetchUnrealized(ctx context.Context, accounts []string) (map[string]float64, error)
	FetchWalletBalances(ctx context.Context, accounts []string) (map[string]models.WalletBalance, error)
}

// LedgerWriter appends ingested rows to the ledger tables. Used only by the
// Kafka ingest path; the request-serving core never writes.
type LedgerWriter interface {
	InsertTrades(ctx context.Context, trades []models.Trade) error
	InsertTransactions(ctx context.Context, events []models.LedgerEvent) error
	InsertEarnings(ctx context.Context, events []models.LedgerEvent) error
	InsertSnapshots(ctx context.Context, snaps []models.BalanceSnapshot) error
}

// Metrics records operational counters and latencies.
type Metrics interface {
	RecordRequest(endpoint string, seconds float64)
	RecordError(kind string)
	RecordStoreLatency(op string, seconds float64)
	RecordIngest(table string, rows int)
}
