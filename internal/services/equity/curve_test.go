package equity

import (
    "testing"
    "time"

    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
)

func day(d int) time.Time {
    return time.Date(2025, 10, d, 0, 0, 0, 0, time.UTC)
}

func at(d, h int) time.Time {
    return time.Date(2025, 10, d, h, 0, 0, 0, time.UTC)
}

func TestBuildDailyFlatWithoutEvents(t *testing.T) {
    vals := BuildDaily(nil, 500.0, day(1), day(5), CurveConfig{})
    if len(vals) != 5 {
        t.Fatalf("expected 5 rows, got %d", len(vals))
    }
    for i, v := range vals {
        if v != 500.0 {
            t.Fatalf("row %d: expected 500.0, got %v", i, v)
        }
    }
}

func TestBuildDailyForwardFill(t *testing.T) {
    events := []models.LedgerEvent{
        {Account: "a", Time: at(2, 12), Amount: 100, Kind: models.KindRealizedTrade},
        {Account: "a", Time: at(4, 12), Amount: -30, Kind: models.KindFundingFee},
    }
    vals := BuildDaily(events, 1000, day(1), day(5), CurveConfig{})
    want := []float64{1000, 1100, 1100, 1070, 1070}
    for i := range want {
        if vals[i] != want[i] {
            t.Fatalf("row %d: expected %v, got %v", i, want[i], vals[i])
        }
    }
}

func TestBuildDailyExcludesTransfer(t *testing.T) {
    events := []models.LedgerEvent{
        {Account: "a", Time: at(2, 12), Amount: 100, Kind: models.KindRealizedTrade},
        {Account: "a", Time: at(3, 12), Amount: 5000, Kind: models.KindTransfer},
    }
    vals := BuildDaily(events, 0, day(1), day(3), CurveConfig{})
    if vals[2] != 100 {
        t.Fatalf("transfer must not move the daily series, got %v", vals[2])
    }
}

func TestBuildDailyLastValueOfDayWins(t *testing.T) {
    events := []models.LedgerEvent{
        {Account: "a", Time: at(2, 9), Amount: 50, Kind: models.KindRealizedTrade},
        {Account: "a", Time: at(2, 18), Amount: -20, Kind: models.KindRealizedTrade},
    }
    vals := BuildDaily(events, 0, day(1), day(2), CurveConfig{})
    if vals[1] != 30 {
        t.Fatalf("expected end-of-day balance 30, got %v", vals[1])
    }
}

func TestBuildDailySessionCut(t *testing.T) {
    // 07:00 on the 3rd with cutHour=8 belongs to the 2nd's session
    events := []models.LedgerEvent{
        {Account: "a", Time: at(3, 7), Amount: 10, Kind: models.KindRealizedTrade},
    }
    vals := BuildDaily(events, 0, day(1), day(3), CurveConfig{CutHour: 8})
    if vals[1] != 10 {
        t.Fatalf("expected the event on day 2's session, got %v", vals[1])
    }
    if vals[2] != 10 {
        t.Fatalf("expected forward fill on day 3, got %v", vals[2])
    }
}

func TestBridgeSumTransferToggle(t *testing.T) {
    events := []models.LedgerEvent{
        {Amount: 100, Kind: models.KindRealizedTrade},
        {Amount: -10, Kind: models.KindFundingFee},
        {Amount: 500, Kind: models.KindTransfer},
    }
    if got := BridgeSum(events, CurveConfig{IncludeTransferInBridge: true}); got != 590 {
        t.Fatalf("expected 590, got %v", got)
    }
    if got := BridgeSum(events, CurveConfig{IncludeTransferInBridge: false}); got != 90 {
        t.Fatalf("expected 90, got %v", got)
    }
}

func TestFrameTotalIsRowWiseSum(t *testing.T) {
    f := NewFrame(day(1), day(3))
    f.SetColumn("a", []float64{1000, 1050, 1100})
    f.SetColumn("b", []float64{2000, 2000, 1950})
    total := f.Total()
    want := []float64{3000, 3050, 3050}
    for i := range want {
        if total[i] != want[i] {
            t.Fatalf("row %d: expected %v, got %v", i, want[i], total[i])
        }
    }
}

func TestInjectMarginInvariant(t *testing.T) {
    f := NewFrame(day(1), day(3))
    f.SetColumn("a", []float64{1000, 1100, 1070})
    offsets := map[string]float64{"a": 40}
    live := map[string]float64{"a": 25}

    m := InjectMargin(f, offsets, live)

    realized := f.Column("a")
    margin := m.Column("a")
    for i := 0; i < len(margin)-1; i++ {
        if margin[i] != realized[i]+40 {
            t.Fatalf("row %d: invariant broken, got %v", i, margin[i])
        }
    }
    if margin[2] != 1070+40+25 {
        t.Fatalf("last row must carry live injection, got %v", margin[2])
    }
    if realized[2] != 1070 {
        t.Fatalf("realized series must be untouched, got %v", realized[2])
    }

    // total recomputed after injection
    if got := m.Total()[2]; got != 1135 {
        t.Fatalf("total must be row-wise sum after injection, got %v", got)
    }
}

func TestFramePayloadKeys(t *testing.T) {
    f := NewFrame(day(1), day(2))
    f.SetColumn("a", []float64{1, 2})
    p := f.ToPayload()
    row, ok := p["2025-10-01 00:00:00"]
    if !ok {
        t.Fatalf("expected day-stamp key, got %v", p)
    }
    if row["a"] != 1 || row[TotalColumn] != 1 {
        t.Fatalf("unexpected row %v", row)
    }
}
