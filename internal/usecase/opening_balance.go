package usecase

import (
	"context"
	"time"

	domrepo "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/repository"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/services/equity"
)

// OpeningBalanceResolver establishes the authoritative balance of an account
// at a point in time: the nearest snapshot at or before the anchor, plus a
// ledger bridge over any gap.
type OpeningBalanceResolver struct {
	ledger domrepo.LedgerStore
	cfg    equity.CurveConfig
}

func NewOpeningBalanceResolver(ledger domrepo.LedgerStore, cfg equity.CurveConfig) *OpeningBalanceResolver {
	return &OpeningBalanceResolver{ledger: ledger, cfg: cfg}
}

// Resolve returns the balance at asOf and whether any snapshot anchored it.
// When no snapshot at or before asOf exists, the earliest available snapshot
// is used as a documented fallback; with no snapshots at all the balance is
// 0.0 and anchored is false.
//
// A snapshot at or after asOf is returned directly: the bridge covers only
// (snapshotTime, asOf - 1s], so it never executes in that case and cannot
// double count.
func (r *OpeningBalanceResolver) Resolve(ctx context.Context, account string, asOf time.Time) (float64, bool, error) {
	snap, ok, err := r.ledger.LatestSnapshotAt(ctx, account, asOf)
	if err != nil {
		return 0.0, false, err
	}
	if !ok {
		snap, ok, err = r.ledger.EarliestSnapshot(ctx, account)
		if err != nil {
			return 0.0, false, err
		}
		if !ok {
			return 0.0, false, nil
		}
	}

	if !snap.Time.Before(asOf) {
		return snap.Value, true, nil
	}

	from := snap.Time.Add(time.Second)
	to := asOf.Add(-time.Second)
	if from.After(to) {
		return snap.Value, true, nil
	}
	events, err := r.ledger.FetchEvents(ctx, account, from, to)
	if err != nil {
		return 0.0, false, err
	}
	return snap.Value + equity.BridgeSum(events, r.cfg), true, nil
}
