package models

import "time"

// EventKind tags a ledger event with its economic type.
type EventKind string

const (
	KindRealizedTrade EventKind = "realized_trade"
	KindFundingFee    EventKind = "funding_fee"
	KindEarning       EventKind = "earning"
	KindTransfer      EventKind = "transfer"
)

// LedgerEvent is a single dollar-denominated, append-only event.
// For KindRealizedTrade the amount is already net of commission; the store
// normalizes gross realized PnL before events leave the repository layer.
type LedgerEvent struct {
	Account string
	Time    time.Time
	Amount  float64
	Kind    EventKind
}

// Trade is a symbol-level fill used for per-symbol PnL and daily trade PnL.
// Pnl is gross realized PnL; Net() is what feeds every aggregate.
type Trade struct {
	Account    string
	Symbol     string
	Time       time.Time
	Pnl        float64
	Commission float64
}

// Net returns realized PnL net of commission.
func (t Trade) Net() float64 {
	return t.Pnl - t.Commission
}

// BalanceSnapshot is an authoritative point-in-time balance recorded by an
// external system. Used only as an equity anchor, never replayed.
type BalanceSnapshot struct {
	Account string
	Time    time.Time
	Value   float64
}

// WalletBalance holds the live wallet components kept in the snapshot store.
type WalletBalance struct {
	Balance     float64 `json:"balance"`
	EarnBalance float64 `json:"earn_balance"`
	SpotBalance float64 `json:"spot_balance"`
}
