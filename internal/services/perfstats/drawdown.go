package perfstats

import "time"

// DrawdownSeries computes (level - runningMax) / runningMax per row, with a
// zero-peak guard yielding 0.0.
func DrawdownSeries(levels []float64) []float64 {
	out := make([]float64, len(levels))
	peak := 0.0
	for i, v := range levels {
		if i == 0 || v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		out[i] = (v - peak) / peak
	}
	return out
}

// MaxDrawdown is the most negative drawdown over the whole series.
func MaxDrawdown(levels []float64) float64 {
	min := 0.0
	for _, dd := range DrawdownSeries(levels) {
		if dd < min {
			min = dd
		}
	}
	return min
}

// MaxDrawdownMTD restricts to the latest calendar month before computing.
func MaxDrawdownMTD(days []time.Time, levels []float64) float64 {
	if len(days) == 0 || len(days) != len(levels) {
		return 0.0
	}
	last := days[len(days)-1].UTC()
	start := 0
	for i, d := range days {
		if d.UTC().Year() == last.Year() && d.UTC().Month() == last.Month() {
			start = i
			break
		}
	}
	return MaxDrawdown(levels[start:])
}

// CurrentDrawdown prices the latest point against the running peak. The
// asymmetry is deliberate: the peak comes from the uninjected level series
// while the current value carries the live unrealized add, answering "how far
// below the best settled peak are we right now, live". Zero peak yields 0.0,
// and a live lift above the peak clamps to 0.0.
func CurrentDrawdown(levels []float64, liveAdd float64) float64 {
	if len(levels) == 0 {
		return 0.0
	}
	peak := levels[0]
	for _, v := range levels[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 0.0
	}
	dd := (levels[len(levels)-1] + liveAdd - peak) / peak
	if dd > 0 {
		return 0.0
	}
	return dd
}
