package perfstats

import "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"

// TotalKey is the synthetic per-symbol column summing all accounts.
const TotalKey = "TOTAL"

// SymbolBreakdown holds per-symbol, per-account net realized PnL.
type SymbolBreakdown struct {
	// Symbols maps symbol -> account -> net PnL, with a TOTAL entry per symbol.
	Symbols map[string]map[string]float64
	// TotalPerAccount sums each account across all symbols.
	TotalPerAccount map[string]float64
}

// SymbolPnL aggregates trades into a per-symbol breakdown. Commission is
// already netted via Trade.Net.
func SymbolPnL(tradesByAccount map[string][]models.Trade) SymbolBreakdown {
	out := SymbolBreakdown{
		Symbols:         make(map[string]map[string]float64),
		TotalPerAccount: make(map[string]float64),
	}
	for acct, trades := range tradesByAccount {
		out.TotalPerAccount[acct] = 0
		for _, tr := range trades {
			row, ok := out.Symbols[tr.Symbol]
			if !ok {
				row = make(map[string]float64)
				out.Symbols[tr.Symbol] = row
			}
			net := tr.Net()
			row[acct] += net
			row[TotalKey] += net
			out.TotalPerAccount[acct] += net
		}
	}
	return out
}
