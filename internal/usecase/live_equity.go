package usecase

import (
	"context"
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	domrepo "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/repository"
	applogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/util"
)

// LiveEquity composes current account equity from the snapshot store:
// futures wallet + earn + spot + live unrealized PnL per account.
type LiveEquity struct {
	snaps domrepo.SnapshotStore
	l     *applogger.Logger
	now   func() time.Time
}

func NewLiveEquity(snaps domrepo.SnapshotStore, l *applogger.Logger) *LiveEquity {
	return &LiveEquity{snaps: snaps, l: l, now: time.Now}
}

// SetClock overrides wall-clock time. Used by tests.
func (u *LiveEquity) SetClock(now func() time.Time) { u.now = now }

func (u *LiveEquity) Compute(ctx context.Context, names []string) (*models.LiveEquityPayload, error) {
	wallets, err := u.snaps.FetchWalletBalances(ctx, names)
	if err != nil {
		u.l.Warn("wallet balances degraded", applogger.Error(err))
		wallets = map[string]models.WalletBalance{}
	}
	live, err := u.snaps.FetchUnrealized(ctx, names)
	if err != nil {
		u.l.Warn("unrealized snapshot degraded", applogger.Error(err))
		live = map[string]float64{}
	}

	per := make(map[string]float64, len(names))
	var combined float64
	for _, acct := range names {
		wb := wallets[acct]
		eq := wb.Balance + wb.EarnBalance + wb.SpotBalance + live[acct]
		per[acct] = util.Round6(eq)
		combined += eq
	}
	return &models.LiveEquityPayload{
		AsOf:       util.FormatISO(u.now()),
		Combined:   util.Round6(combined),
		PerAccount: per,
	}, nil
}
