package equity

import (
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/util"
)

// TotalColumn is the synthetic column holding the row-wise account sum.
const TotalColumn = "total"

// Frame is a contiguous daily index with one float column per account.
// The total column is never stored; it is recomputed row-wise on demand so
// injections can never leave it stale.
type Frame struct {
	Days     []time.Time
	Accounts []string
	cols     map[string][]float64
}

// NewFrame allocates a frame spanning [startDay, endDay] inclusive.
func NewFrame(startDay, endDay time.Time) *Frame {
	startDay = util.DayFloor(startDay)
	endDay = util.DayFloor(endDay)
	n := 0
	if !endDay.Before(startDay) {
		n = int(endDay.Sub(startDay).Hours()/24) + 1
	}
	days := make([]time.Time, n)
	for i := range days {
		days[i] = startDay.AddDate(0, 0, i)
	}
	return &Frame{Days: days, cols: make(map[string][]float64)}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Days) }

// SetColumn installs a column; vals must have Len() entries.
func (f *Frame) SetColumn(account string, vals []float64) {
	if _, ok := f.cols[account]; !ok {
		f.Accounts = append(f.Accounts, account)
	}
	f.cols[account] = vals
}

// Column returns the values for an account, or nil when absent.
func (f *Frame) Column(account string) []float64 {
	return f.cols[account]
}

// Total computes the row-wise sum across all account columns.
func (f *Frame) Total() []float64 {
	out := make([]float64, f.Len())
	for _, acct := range f.Accounts {
		for i, v := range f.cols[acct] {
			out[i] += v
		}
	}
	return out
}

// Clone deep-copies the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Days:     f.Days,
		Accounts: append([]string(nil), f.Accounts...),
		cols:     make(map[string][]float64, len(f.cols)),
	}
	for acct, vals := range f.cols {
		c.cols[acct] = append([]float64(nil), vals...)
	}
	return c
}

// Subset returns a frame with only the named accounts (missing ones skipped).
func (f *Frame) Subset(accounts []string) *Frame {
	s := &Frame{Days: f.Days, cols: make(map[string][]float64)}
	for _, acct := range accounts {
		if vals, ok := f.cols[acct]; ok {
			s.SetColumn(acct, vals)
		}
	}
	return s
}

// ToPayload serializes the frame as day-stamp -> account -> value, including
// the total column.
func (f *Frame) ToPayload() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, f.Len())
	total := f.Total()
	for i, day := range f.Days {
		row := make(map[string]float64, len(f.Accounts)+1)
		for _, acct := range f.Accounts {
			row[acct] = f.cols[acct][i]
		}
		row[TotalColumn] = total[i]
		out[util.FormatDayStamp(day)] = row
	}
	return out
}
