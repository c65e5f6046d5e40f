package usecase

import (
    "context"
    "errors"
    "os"
    "path/filepath"
    "sort"
    "testing"
    "time"

    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/service/accounts"
    applogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"
)

// fakeLedgerStore serves canned data filtered by time range, mimicking the
// inclusive-range contract of the real store.
type fakeLedgerStore struct {
    events    map[string][]models.LedgerEvent
    trades    map[string][]models.Trade
    snapshots map[string][]models.BalanceSnapshot
    fetchLog  [][2]time.Time
    failAll   bool
}

var errStoreDown = errors.New("store down")

func (f *fakeLedgerStore) FetchEvents(_ context.Context, account string, from, to time.Time) ([]models.LedgerEvent, error) {
    if f.failAll {
        return nil, errStoreDown
    }
    f.fetchLog = append(f.fetchLog, [2]time.Time{from, to})
    out := []models.LedgerEvent{}
    for _, ev := range f.events[account] {
        if !ev.Time.Before(from) && !ev.Time.After(to) {
            out = append(out, ev)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
    return out, nil
}

func (f *fakeLedgerStore) FetchTrades(_ context.Context, account string, from, to time.Time) ([]models.Trade, error) {
    if f.failAll {
        return nil, errStoreDown
    }
    out := []models.Trade{}
    for _, tr := range f.trades[account] {
        if !tr.Time.Before(from) && !tr.Time.After(to) {
            out = append(out, tr)
        }
    }
    return out, nil
}

func (f *fakeLedgerStore) LatestSnapshotAt(_ context.Context, account string, asOf time.Time) (models.BalanceSnapshot, bool, error) {
    if f.failAll {
        return models.BalanceSnapshot{}, false, errStoreDown
    }
    var best models.BalanceSnapshot
    found := false
    for _, sn := range f.snapshots[account] {
        if sn.Time.After(asOf) {
            continue
        }
        if !found || sn.Time.After(best.Time) {
            best = sn
            found = true
        }
    }
    return best, found, nil
}

func (f *fakeLedgerStore) EarliestSnapshot(_ context.Context, account string) (models.BalanceSnapshot, bool, error) {
    if f.failAll {
        return models.BalanceSnapshot{}, false, errStoreDown
    }
    var best models.BalanceSnapshot
    found := false
    for _, sn := range f.snapshots[account] {
        if !found || sn.Time.Before(best.Time) {
            best = sn
            found = true
        }
    }
    return best, found, nil
}

func (f *fakeLedgerStore) Health(context.Context) error { return nil }

type fakeSnapshotStore struct {
    unrealized map[string]float64
    wallets    map[string]models.WalletBalance
    fail       bool
}

func (f *fakeSnapshotStore) FetchUnrealized(_ context.Context, names []string) (map[string]float64, error) {
    if f.fail {
        return nil, errStoreDown
    }
    out := map[string]float64{}
    var total float64
    for _, n := range names {
        out[n] = f.unrealized[n]
        total += f.unrealized[n]
    }
    out["total"] = total
    return out, nil
}

func (f *fakeSnapshotStore) FetchWalletBalances(_ context.Context, names []string) (map[string]models.WalletBalance, error) {
    if f.fail {
        return nil, errStoreDown
    }
    out := map[string]models.WalletBalance{}
    for _, n := range names {
        out[n] = f.wallets[n]
    }
    return out, nil
}

type fakeMetrics struct{ errs []string }

func (m *fakeMetrics) RecordRequest(string, float64)      {}
func (m *fakeMetrics) RecordError(kind string)            { m.errs = append(m.errs, kind) }
func (m *fakeMetrics) RecordStoreLatency(string, float64) {}
func (m *fakeMetrics) RecordIngest(string, int)           {}

func testLogger(t *testing.T) *applogger.Logger {
    t.Helper()
    l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
    if err != nil {
        t.Fatalf("logger: %v", err)
    }
    return l
}

func testDirectory(t *testing.T) *accounts.Directory {
    t.Helper()
    dir := t.TempDir()
    write := func(name, content string) string {
        path := filepath.Join(dir, name)
        if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
            t.Fatalf("write %s: %v", name, err)
        }
        return path
    }
    acctPath := write("accounts.json", `[
        {"binanceName": "alpha", "strategy": "janus", "leverage": 3, "monitored": true},
        {"binanceName": "beta", "strategy": "janus", "leverage": 2, "monitored": true}
    ]`)
    balPath := write("balance.json", `{"alpha": 1000, "beta": 2000}`)
    unrealPath := write("unrealized.json", `{"alpha": 40}`)

    d, err := accounts.Load(acctPath, balPath, unrealPath)
    if err != nil {
        t.Fatalf("directory: %v", err)
    }
    return d
}
