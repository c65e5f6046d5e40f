package perfstats

import (
    "testing"
    "time"

    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
)

func day(d int) time.Time {
    return time.Date(2025, 10, d, 0, 0, 0, 0, time.UTC)
}

func days(from, to int) []time.Time {
    out := make([]time.Time, 0, to-from+1)
    for d := from; d <= to; d++ {
        out = append(out, day(d))
    }
    return out
}

func TestPctReturnsZeroGuards(t *testing.T) {
    got := PctReturns([]float64{0, 100, 110, 0, 50})
    want := []float64{0, 0, 0.1, -1, 0}
    for i := range want {
        if got[i] != want[i] {
            t.Fatalf("row %d: expected %v, got %v", i, want[i], got[i])
        }
    }
}

func TestMTDReturnRestrictsToLatestMonth(t *testing.T) {
    idx := []time.Time{
        time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC),
        time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
        day(1),
        day(2),
    }
    levels := []float64{900, 950, 1000, 1100}
    got := MTDReturn(idx, levels)
    if got != 0.1 {
        t.Fatalf("expected 0.1, got %v", got)
    }
}

func TestMTDReturnZeroDenominator(t *testing.T) {
    if got := MTDReturn(days(1, 3), []float64{0, 10, 20}); got != 0.0 {
        t.Fatalf("expected 0.0, got %v", got)
    }
}

func TestMonthlyReturnGeometric(t *testing.T) {
    idx := days(1, 3)
    rets := []float64{0.0, 0.1, -0.05}
    got := MonthlyReturn(idx, rets)
    want := 1.1*0.95 - 1.0
    if v := got["2025-10"]; v < want-1e-12 || v > want+1e-12 {
        t.Fatalf("expected %v, got %v", want, v)
    }
}

func TestMaxDrawdown(t *testing.T) {
    levels := []float64{100, 120, 90, 110, 80}
    got := MaxDrawdown(levels)
    want := (80.0 - 120.0) / 120.0
    if got != want {
        t.Fatalf("expected %v, got %v", want, got)
    }
}

func TestMaxDrawdownFlatSeries(t *testing.T) {
    if got := MaxDrawdown([]float64{500, 500, 500}); got != 0.0 {
        t.Fatalf("expected 0.0, got %v", got)
    }
}

func TestCurrentDrawdownAsymmetric(t *testing.T) {
    // peak from settled levels, current value priced with the live add
    levels := []float64{100, 120, 110}
    got := CurrentDrawdown(levels, -5)
    want := (110.0 - 5.0 - 120.0) / 120.0
    if got != want {
        t.Fatalf("expected %v, got %v", want, got)
    }
    // live lift above peak clamps to zero
    if got := CurrentDrawdown(levels, 50); got != 0.0 {
        t.Fatalf("expected clamp to 0.0, got %v", got)
    }
    if got := CurrentDrawdown([]float64{0, 0}, 10); got != 0.0 {
        t.Fatalf("zero peak must yield 0.0, got %v", got)
    }
}

func TestLosingStreakTrailingZeroSkip(t *testing.T) {
    // [+5, -3, -2, 0, -1] where the last complete day is the 0 entry:
    // the -1 day is excluded as incomplete, the trailing zero is skipped,
    // and the streak is the two losing days before it.
    idx := days(1, 5)
    vals := []float64{5, -3, -2, 0, -1}
    got := LosingStreak(idx, vals, StreakConfig{
        SkipTrailingZero: true,
        LastComplete:     day(4),
    })
    if got.Consecutive != 2 {
        t.Fatalf("expected streak 2, got %d", got.Consecutive)
    }
    if len(got.Days) != 2 || got.Days["2025-10-02"] != -3 || got.Days["2025-10-03"] != -2 {
        t.Fatalf("unexpected tail %v", got.Days)
    }
}

func TestLosingStreakIncompleteDaysExcluded(t *testing.T) {
    idx := days(1, 3)
    vals := []float64{-1, -2, -3}
    got := LosingStreak(idx, vals, StreakConfig{LastComplete: day(2)})
    if got.Consecutive != 2 {
        t.Fatalf("expected streak 2, got %d", got.Consecutive)
    }
}

func TestLosingStreakIncludeZero(t *testing.T) {
    idx := days(1, 4)
    vals := []float64{5, -2, 0, -1}
    strict := LosingStreak(idx, vals, StreakConfig{})
    if strict.Consecutive != 1 {
        t.Fatalf("strict mode: expected 1, got %d", strict.Consecutive)
    }
    loose := LosingStreak(idx, vals, StreakConfig{IncludeZero: true})
    if loose.Consecutive != 3 {
        t.Fatalf("includeZero mode: expected 3, got %d", loose.Consecutive)
    }
}

func TestLosingStreakNoLosses(t *testing.T) {
    got := LosingStreak(days(1, 3), []float64{1, 2, 3}, StreakConfig{SkipTrailingZero: true})
    if got.Consecutive != 0 || len(got.Days) != 0 {
        t.Fatalf("expected empty streak, got %+v", got)
    }
}

func TestDailyTradePnLBuckets(t *testing.T) {
    trades := []models.Trade{
        {Account: "a", Symbol: "BTCUSDT", Time: time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC), Pnl: 10, Commission: 1},
        {Account: "a", Symbol: "ETHUSDT", Time: time.Date(2025, 10, 3, 7, 0, 0, 0, time.UTC), Pnl: -5, Commission: 0},
    }
    idx, vals := DailyTradePnL(trades, day(1), day(3), 8)
    if len(idx) != 3 {
        t.Fatalf("expected 3 days, got %d", len(idx))
    }
    // 07:00 on the 3rd falls into the 2nd's session under cutHour=8
    if vals[0] != 0 || vals[1] != 9-5 || vals[2] != 0 {
        t.Fatalf("unexpected buckets %v", vals)
    }
}

func TestSymbolPnL(t *testing.T) {
    trades := map[string][]models.Trade{
        "a": {
            {Symbol: "BTCUSDT", Pnl: 10, Commission: 1},
            {Symbol: "BTCUSDT", Pnl: 5, Commission: 0.5},
            {Symbol: "ETHUSDT", Pnl: -3, Commission: 0},
        },
        "b": {
            {Symbol: "BTCUSDT", Pnl: -2, Commission: 0},
        },
    }
    got := SymbolPnL(trades)
    btc := got.Symbols["BTCUSDT"]
    if btc["a"] != 13.5 || btc["b"] != -2 || btc[TotalKey] != 11.5 {
        t.Fatalf("unexpected BTC row %v", btc)
    }
    if got.TotalPerAccount["a"] != 10.5 || got.TotalPerAccount["b"] != -2 {
        t.Fatalf("unexpected per-account totals %v", got.TotalPerAccount)
    }
}
