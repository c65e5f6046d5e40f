package equity

// InjectMargin derives the margin view from a realized frame: each account
// column is lifted by its constant unrealized baseline offset on every row,
// and the live unrealized snapshot is added on the final row only. Earlier,
// already-settled rows are never touched by live data.
func InjectMargin(realized *Frame, baselineOffsets, live map[string]float64) *Frame {
	margin := realized.Clone()
	last := margin.Len() - 1
	for _, acct := range margin.Accounts {
		vals := margin.Column(acct)
		if off := baselineOffsets[acct]; off != 0 {
			for i := range vals {
				vals[i] += off
			}
		}
		if last >= 0 {
			vals[last] += live[acct]
		}
	}
	return margin
}
