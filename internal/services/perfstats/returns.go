package perfstats

import "time"

// PctReturns computes row-over-row simple returns. The first row and any row
// with a zero denominator yield 0.0 by convention, never NaN or Inf.
func PctReturns(levels []float64) []float64 {
	out := make([]float64, len(levels))
	for i := 1; i < len(levels); i++ {
		if levels[i-1] == 0 {
			continue
		}
		out[i] = (levels[i] - levels[i-1]) / levels[i-1]
	}
	return out
}

// MTDReturn restricts the series to the latest calendar month present in the
// index and returns (last - first) / first, with a zero-denominator guard.
func MTDReturn(days []time.Time, levels []float64) float64 {
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
	first := levels[start]
	if first == 0 {
		return 0.0
	}
	return (levels[len(levels)-1] - first) / first
}

// MonthlyReturn compounds a return series geometrically per calendar month:
// prod(1+r) - 1, keyed by "YYYY-MM".
func MonthlyReturn(days []time.Time, returns []float64) map[string]float64 {
	out := make(map[string]float64)
	if len(days) != len(returns) {
		return out
	}
	acc := make(map[string]float64)
	for i, d := range days {
		key := d.UTC().Format("2006-01")
		if _, ok := acc[key]; !ok {
			acc[key] = 1.0
		}
		acc[key] *= 1.0 + returns[i]
	}
	for key, prod := range acc {
		out[key] = prod - 1.0
	}
	return out
}
