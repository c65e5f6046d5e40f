package equity

import (
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/util"
)

// CurveConfig is the single set of knobs for equity-curve construction.
// Day-boundary convention and transfer handling used to live in separate
// near-duplicate code paths upstream; here they are explicit parameters.
type CurveConfig struct {
	// CutHour shifts day bucketing: a day rolls over at CutHour UTC.
	// Zero means plain UTC calendar days.
	CutHour int
	// IncludeTransferInBridge controls whether Transfer events count when
	// bridging from a balance snapshot to an anchor point. Transfers are
	// always excluded from the daily running balance itself.
	IncludeTransferInBridge bool
}

// BuildDaily replays a ledger into an end-of-day balance series over
// [startDay, endDay] inclusive.
//
// The running balance is initial + cumulative event amounts (Transfer
// excluded); each session day keeps the last value observed that day. Days
// with no events forward-fill from the prior day, and days before the first
// observed value default to initial.
func BuildDaily(events []models.LedgerEvent, initial float64, startDay, endDay time.Time, cfg CurveConfig) []float64 {
	startDay = util.DayFloor(startDay)
	endDay = util.DayFloor(endDay)

	running := initial
	lastOfDay := make(map[time.Time]float64)
	for _, ev := range events {
		if ev.Kind == models.KindTransfer {
			continue
		}
		running += ev.Amount
		lastOfDay[util.SessionDay(ev.Time, cfg.CutHour)] = running
	}

	n := 0
	if !endDay.Before(startDay) {
		n = int(endDay.Sub(startDay).Hours()/24) + 1
	}
	out := make([]float64, n)
	prev := initial
	for i := 0; i < n; i++ {
		day := startDay.AddDate(0, 0, i)
		if v, ok := lastOfDay[day]; ok {
			prev = v
		}
		out[i] = prev
	}
	return out
}

// BridgeSum totals event amounts for anchor bridging. Unlike the daily
// series, Transfer counts here when the config says so: moving money in or
// out changed the balance between snapshot and anchor even though it is not
// trading PnL.
func BridgeSum(events []models.LedgerEvent, cfg CurveConfig) float64 {
	var sum float64
	for _, ev := range events {
		if ev.Kind == models.KindTransfer && !cfg.IncludeTransferInBridge {
			continue
		}
		sum += ev.Amount
	}
	return sum
}
