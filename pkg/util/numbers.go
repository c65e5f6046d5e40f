package util

import "math"

// Round6 rounds to 6 decimal places. Applied only at the serialization
// boundary; intermediate computation stays unrounded. NaN and Inf collapse
// to 0.0 so the wire format stays valid JSON.
func Round6(v float64) float64 {
    if math.IsNaN(v) || math.IsInf(v, 0) {
        return 0.0
    }
    return math.Round(v*1e6) / 1e6
}

// Round6Map rounds every value in a map in place and returns it.
func Round6Map(m map[string]float64) map[string]float64 {
    for k, v := range m {
        m[k] = Round6(v)
    }
    return m
}
