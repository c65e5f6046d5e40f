package perfstats

import (
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/util"
)

// DailyTradePnL buckets net trade PnL (gross minus commission) into session
// days over [startDay, endDay] inclusive, zero-filling days without trades.
func DailyTradePnL(trades []models.Trade, startDay, endDay time.Time, cutHour int) ([]time.Time, []float64) {
	startDay = util.DayFloor(startDay)
	endDay = util.DayFloor(endDay)

	byDay := make(map[time.Time]float64)
	for _, tr := range trades {
		byDay[util.SessionDay(tr.Time, cutHour)] += tr.Net()
	}

	n := 0
	if !endDay.Before(startDay) {
		n = int(endDay.Sub(startDay).Hours()/24) + 1
	}
	days := make([]time.Time, n)
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		days[i] = startDay.AddDate(0, 0, i)
		vals[i] = byDay[days[i]]
	}
	return days, vals
}

// SumSeries adds aligned series element-wise; all inputs must share a length.
func SumSeries(series ...[]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series[0]))
	for _, s := range series {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}
