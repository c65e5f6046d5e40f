package models

// Typed wire schema for the bulk-metrics payload. Every collection is always
// present (possibly empty) so clients can rely on a stable shape; Message is
// set only for degenerate windows with no data.

// DrawdownPayload carries current and max drawdown per account plus "total".
type DrawdownPayload struct {
	Current map[string]float64 `json:"current"`
	Max     map[string]float64 `json:"max"`
}

// ScopeMetrics groups the metrics computed on one equity flavor
// (realized or margin).
type ScopeMetrics struct {
	// Equity maps "YYYY-MM-DD 00:00:00" -> account -> balance (plus "total").
	Equity        map[string]map[string]float64 `json:"equity"`
	MTDReturn     map[string]float64            `json:"mtdReturn"`
	MonthlyReturn map[string]float64            `json:"monthlyReturn"`
	Drawdown      DrawdownPayload               `json:"drawdown"`
}

// LosingStreakPayload is the length and day-by-day tail of the most recent
// run of losing days. Days maps "YYYY-MM-DD" -> net PnL.
type LosingStreakPayload struct {
	Consecutive int                `json:"consecutive"`
	Days        map[string]float64 `json:"days"`
}

// SymbolPnlPayload maps symbol -> account -> net realized PnL, with a TOTAL
// column per symbol and a per-account total across symbols.
type SymbolPnlPayload struct {
	Symbols         map[string]map[string]float64 `json:"symbols"`
	TotalPerAccount map[string]float64            `json:"totalPerAccount"`
}

// UPnlPayload is the live unrealized-PnL snapshot.
type UPnlPayload struct {
	AsOf       string             `json:"as_of"`
	Combined   float64            `json:"combined"`
	PerAccount map[string]float64 `json:"perAccount"`
}

// StrategyMetrics is a per-strategy rollup, recomputed on the group's own
// total series rather than combined from per-account percentages.
type StrategyMetrics struct {
	Accounts  []string           `json:"accounts"`
	MTDReturn map[string]float64 `json:"mtdReturn"`
	Drawdown  DrawdownPayload    `json:"drawdown"`
}

// MetaPayload carries advisory flags (e.g. accounts resolved with a zero
// opening balance). Never an error signal.
type MetaPayload struct {
	Flags map[string][]string `json:"flags,omitempty"`
}

// BulkMetricsPayload is the top-level response of GET /api/metrics/bulk.
type BulkMetricsPayload struct {
	Message    string                         `json:"message,omitempty"`
	Window     map[string]string              `json:"window"`
	Realized   ScopeMetrics                   `json:"realized"`
	Margin     ScopeMetrics                   `json:"margin"`
	LosingDays map[string]LosingStreakPayload `json:"losingDays"`
	SymbolPnl  SymbolPnlPayload               `json:"symbolPnl"`
	UPnl       UPnlPayload                    `json:"uPnl"`
	Strategies map[string]StrategyMetrics     `json:"strategies"`
	Meta       MetaPayload                    `json:"meta,omitempty"`
}

// LiveEquityPayload is the response of GET /api/equity/live: futures wallet +
// earn + spot + live uPnL per account.
type LiveEquityPayload struct {
	AsOf       string             `json:"as_of"`
	Combined   float64            `json:"combined"`
	PerAccount map[string]float64 `json:"perAccount"`
}
