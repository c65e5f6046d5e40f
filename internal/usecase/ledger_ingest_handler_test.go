package usecase

import (
    "context"
    "testing"
    "time"

    "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
)

type fakeWriter struct {
    trades []models.Trade
    events []models.LedgerEvent
    snaps  []models.BalanceSnapshot
}

func (w *fakeWriter) InsertTrades(_ context.Context, trades []models.Trade) error {
    w.trades = append(w.trades, trades...)
    return nil
}

func (w *fakeWriter) InsertTransactions(_ context.Context, events []models.LedgerEvent) error {
    w.events = append(w.events, events...)
    return nil
}

func (w *fakeWriter) InsertEarnings(_ context.Context, events []models.LedgerEvent) error {
    w.events = append(w.events, events...)
    return nil
}

func (w *fakeWriter) InsertSnapshots(_ context.Context, snaps []models.BalanceSnapshot) error {
    w.snaps = append(w.snaps, snaps...)
    return nil
}

func TestIngestTradeRow(t *testing.T) {
    w := &fakeWriter{}
    h := NewLedgerIngestHandler("ledger.rows", w, &fakeMetrics{})

    msg := []byte(`{"table":"trades","account":"alpha","symbol":"BTCUSDT","ts":1759406400,"realized_pnl":12.5,"commission":0.5}`)
    if err := h.Handle(context.Background(), msg); err != nil {
        t.Fatalf("handle: %v", err)
    }
    if len(w.trades) != 1 {
        t.Fatalf("expected one trade, got %d", len(w.trades))
    }
    tr := w.trades[0]
    if tr.Account != "alpha" || tr.Net() != 12.0 {
        t.Fatalf("unexpected trade %+v", tr)
    }
    if !tr.Time.Equal(time.Unix(1759406400, 0).UTC()) {
        t.Fatalf("unexpected ts %v", tr.Time)
    }
}

func TestIngestTransferRowMillisecondTs(t *testing.T) {
    w := &fakeWriter{}
    h := NewLedgerIngestHandler("ledger.rows", w, &fakeMetrics{})

    msg := []byte(`{"table":"transactions","account":"alpha","income_type":"TRANSFER","income":500,"ts":1759406400000}`)
    if err := h.Handle(context.Background(), msg); err != nil {
        t.Fatalf("handle: %v", err)
    }
    if len(w.events) != 1 || w.events[0].Kind != models.KindTransfer {
        t.Fatalf("unexpected events %+v", w.events)
    }
    if w.events[0].Time.Unix() != 1759406400 {
        t.Fatalf("ms timestamp must fold to seconds, got %v", w.events[0].Time)
    }
}

func TestIngestUnknownTable(t *testing.T) {
    m := &fakeMetrics{}
    h := NewLedgerIngestHandler("ledger.rows", &fakeWriter{}, m)
    if err := h.Handle(context.Background(), []byte(`{"table":"nope"}`)); err == nil {
        t.Fatalf("expected error for unknown table")
    }
    if len(m.errs) == 0 {
        t.Fatalf("expected error metric")
    }
}
