package usecase

import (
    "context"
    "testing"
    "time"

    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/services/equity"
    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/services/perfstats"
)

func fixtureAggregator(t *testing.T, ledger *fakeLedgerStore, snaps *fakeSnapshotStore) *PerformanceAggregator {
    t.Helper()
    agg := NewPerformanceAggregator(
        ledger,
        snaps,
        testDirectory(t),
        &fakeMetrics{},
        testLogger(t),
        equity.CurveConfig{CutHour: 8, IncludeTransferInBridge: true},
        perfstats.StreakConfig{SkipTrailingZero: true},
    )
    agg.SetClock(func() time.Time {
        return time.Date(2025, 10, 3, 12, 0, 0, 0, time.UTC)
    })
    return agg
}

func twoAccountLedger() *fakeLedgerStore {
    sep30 := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
    oct1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
    oct2noon := time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC)
    return &fakeLedgerStore{
        snapshots: map[string][]models.BalanceSnapshot{
            "alpha": {{Account: "alpha", Time: sep30, Value: 900.0}},
            "beta":  {{Account: "beta", Time: oct1, Value: 2000.0}},
        },
        events: map[string][]models.LedgerEvent{
            "alpha": {
                // bridge gap: realized + transfer both count toward the anchor
                {Account: "alpha", Time: sep30.Add(6 * time.Hour), Amount: 80, Kind: models.KindRealizedTrade},
                {Account: "alpha", Time: sep30.Add(12 * time.Hour), Amount: 20, Kind: models.KindTransfer},
                {Account: "alpha", Time: oct2noon, Amount: 100, Kind: models.KindRealizedTrade},
            },
            "beta": {
                {Account: "beta", Time: oct2noon.Add(time.Hour), Amount: -50, Kind: models.KindRealizedTrade},
            },
        },
        trades: map[string][]models.Trade{
            "alpha": {{Account: "alpha", Symbol: "BTCUSDT", Time: oct2noon, Pnl: 101, Commission: 1}},
            "beta":  {{Account: "beta", Symbol: "ETHUSDT", Time: oct2noon.Add(time.Hour), Pnl: -50, Commission: 0}},
        },
    }
}

func TestBulkMetricsEndToEnd(t *testing.T) {
    snaps := &fakeSnapshotStore{unrealized: map[string]float64{"alpha": 25, "beta": 0}}
    agg := fixtureAggregator(t, twoAccountLedger(), snaps)

    p, err := agg.BulkMetrics(context.Background(), []string{"alpha", "beta"})
    if err != nil {
        t.Fatalf("bulk metrics: %v", err)
    }
    if p.Message != "" {
        t.Fatalf("unexpected message %q", p.Message)
    }

    // realized equity: anchors 1000/2000, +100/-50 on day 2
    first := p.Realized.Equity["2025-10-01 00:00:00"]
    last := p.Realized.Equity["2025-10-03 00:00:00"]
    if first["total"] != 3000 || last["total"] != 3050 {
        t.Fatalf("unexpected totals first=%v last=%v", first["total"], last["total"])
    }
    if last["alpha"] != 1100 || last["beta"] != 1950 {
        t.Fatalf("unexpected last row %v", last)
    }

    // margin invariant: offset on settled rows, live only on the final row
    for _, day := range []string{"2025-10-01 00:00:00", "2025-10-02 00:00:00"} {
        if p.Margin.Equity[day]["alpha"] != p.Realized.Equity[day]["alpha"]+40 {
            t.Fatalf("margin invariant broken on %s", day)
        }
    }
    if got := p.Margin.Equity["2025-10-03 00:00:00"]["alpha"]; got != 1100+40+25 {
        t.Fatalf("expected live injection on last row only, got %v", got)
    }
    if got := p.Margin.Equity["2025-10-03 00:00:00"]["total"]; got != 1165+1950 {
        t.Fatalf("margin total must be recomputed row-wise, got %v", got)
    }

    if p.Realized.MTDReturn["alpha"] != 0.1 {
        t.Fatalf("unexpected alpha mtdReturn %v", p.Realized.MTDReturn["alpha"])
    }
    if p.Realized.MTDReturn["total"] != 0.016667 {
        t.Fatalf("unexpected total mtdReturn %v", p.Realized.MTDReturn["total"])
    }

    if p.Realized.Drawdown.Max["beta"] != -0.025 {
        t.Fatalf("unexpected beta max drawdown %v", p.Realized.Drawdown.Max["beta"])
    }
    if p.Realized.Drawdown.Current["beta"] != -0.025 {
        t.Fatalf("unexpected beta current drawdown %v", p.Realized.Drawdown.Current["beta"])
    }
    // alpha's live lift puts it above its settled peak: clamped to zero
    if p.Realized.Drawdown.Current["alpha"] != 0.0 {
        t.Fatalf("unexpected alpha current drawdown %v", p.Realized.Drawdown.Current["alpha"])
    }

    // last complete day under cutHour=8 at 12:00 UTC is Oct 2
    beta := p.LosingDays["beta"]
    if beta.Consecutive != 1 || beta.Days["2025-10-02"] != -50 {
        t.Fatalf("unexpected beta streak %+v", beta)
    }
    if p.LosingDays["alpha"].Consecutive != 0 {
        t.Fatalf("unexpected alpha streak %+v", p.LosingDays["alpha"])
    }
    if p.LosingDays["combined"].Consecutive != 0 {
        t.Fatalf("combined day PnL is +50, streak must be 0")
    }

    if p.SymbolPnl.Symbols["BTCUSDT"]["alpha"] != 100 || p.SymbolPnl.Symbols["BTCUSDT"]["TOTAL"] != 100 {
        t.Fatalf("unexpected symbol pnl %v", p.SymbolPnl.Symbols)
    }
    if p.SymbolPnl.TotalPerAccount["beta"] != -50 {
        t.Fatalf("unexpected per-account total %v", p.SymbolPnl.TotalPerAccount)
    }

    if p.UPnl.Combined != 25 || p.UPnl.PerAccount["alpha"] != 25 {
        t.Fatalf("unexpected uPnl %+v", p.UPnl)
    }

    janus, ok := p.Strategies["janus"]
    if !ok {
        t.Fatalf("expected janus strategy rollup")
    }
    if janus.MTDReturn["realized"] != 0.016667 {
        t.Fatalf("unexpected strategy realized return %v", janus.MTDReturn["realized"])
    }
    if janus.MTDReturn["margin"] != 0.024671 {
        t.Fatalf("unexpected strategy margin return %v", janus.MTDReturn["margin"])
    }
}

func TestBulkMetricsFlatAccount(t *testing.T) {
    oct1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
    ledger := &fakeLedgerStore{
        snapshots: map[string][]models.BalanceSnapshot{
            "alpha": {{Account: "alpha", Time: oct1, Value: 500.0}},
        },
    }
    snaps := &fakeSnapshotStore{}
    agg := fixtureAggregator(t, ledger, snaps)

    p, err := agg.BulkMetrics(context.Background(), []string{"alpha"})
    if err != nil {
        t.Fatalf("bulk metrics: %v", err)
    }
    if p.Message != "" {
        t.Fatalf("anchored flat series is data, not a degenerate window")
    }
    for day, row := range p.Realized.Equity {
        if row["alpha"] != 500.0 {
            t.Fatalf("expected flat 500.0 on %s, got %v", day, row["alpha"])
        }
    }
    if p.Realized.MTDReturn["alpha"] != 0.0 {
        t.Fatalf("flat series must return 0.0, got %v", p.Realized.MTDReturn["alpha"])
    }
    if p.Realized.Drawdown.Max["alpha"] != 0.0 {
        t.Fatalf("flat series max drawdown must be 0.0")
    }
}

func TestBulkMetricsDegradesOnStoreFailure(t *testing.T) {
    ledger := &fakeLedgerStore{failAll: true}
    snaps := &fakeSnapshotStore{fail: true}
    agg := fixtureAggregator(t, ledger, snaps)

    p, err := agg.BulkMetrics(context.Background(), []string{"alpha"})
    if err != nil {
        t.Fatalf("degraded request must still succeed, got %v", err)
    }
    if p.Message == "" {
        t.Fatalf("expected degenerate-window message")
    }
    if len(p.Meta.Flags["alpha"]) == 0 {
        t.Fatalf("expected advisory flags for alpha")
    }
    if p.UPnl.Combined != 0.0 {
        t.Fatalf("expected zero uPnl, got %v", p.UPnl.Combined)
    }
    // stable schema shape even with no data
    if p.Realized.Equity == nil || p.SymbolPnl.Symbols == nil {
        t.Fatalf("collections must be present, not nil")
    }
}

func TestLiveEquityCompose(t *testing.T) {
    snaps := &fakeSnapshotStore{
        unrealized: map[string]float64{"alpha": 10},
        wallets: map[string]models.WalletBalance{
            "alpha": {Balance: 1000, EarnBalance: 50, SpotBalance: 25},
        },
    }
    u := NewLiveEquity(snaps, testLogger(t))
    u.SetClock(func() time.Time { return time.Date(2025, 10, 3, 12, 0, 0, 0, time.UTC) })

    p, err := u.Compute(context.Background(), []string{"alpha"})
    if err != nil {
        t.Fatalf("compute: %v", err)
    }
    if p.PerAccount["alpha"] != 1085 || p.Combined != 1085 {
        t.Fatalf("unexpected live equity %+v", p)
    }
    if p.AsOf != "2025-10-03T12:00:00Z" {
        t.Fatalf("unexpected as_of %q", p.AsOf)
    }
}
