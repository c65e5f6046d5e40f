package perfstats

import (
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/util"
)

// StreakConfig parameterizes losing-streak detection. Upstream history had
// several near-duplicate variants; these knobs cover all of them.
type StreakConfig struct {
	// IncludeZero counts zero-PnL days as losses (threshold <= Epsilon
	// instead of strict < -Epsilon).
	IncludeZero bool
	// SkipTrailingZero skips trailing days within Epsilon of zero before
	// counting; such no-activity days neither break nor extend a streak.
	SkipTrailingZero bool
	// Epsilon is the zero band. Defaults to 1e-9 when unset.
	Epsilon float64
	// LastComplete truncates the series after this day label. Zero means no
	// completeness truncation.
	LastComplete time.Time
}

// Streak is the result of a losing-streak scan.
type Streak struct {
	Consecutive int
	// Days maps "YYYY-MM-DD" -> net PnL for exactly the days composing the
	// streak, not the whole window.
	Days map[string]float64
}

// LosingStreak counts the most recent unbroken run of losing days in a daily
// net-PnL series, ending at the last complete day. Days after LastComplete
// are excluded entirely, not zero-filled.
func LosingStreak(days []time.Time, vals []float64, cfg StreakConfig) Streak {
	eps := cfg.Epsilon
	if eps == 0 {
		eps = 1e-9
	}

	end := len(days)
	if !cfg.LastComplete.IsZero() {
		for end > 0 && days[end-1].After(cfg.LastComplete) {
			end--
		}
	}

	if cfg.SkipTrailingZero {
		for end > 0 && vals[end-1] >= -eps && vals[end-1] <= eps {
			end--
		}
	}

	isLoss := func(v float64) bool {
		if cfg.IncludeZero {
			return v <= eps
		}
		return v < -eps
	}

	start := end
	for start > 0 && isLoss(vals[start-1]) {
		start--
	}

	tail := make(map[string]float64, end-start)
	for i := start; i < end; i++ {
		tail[util.FormatDay(days[i])] = vals[i]
	}
	return Streak{Consecutive: end - start, Days: tail}
}
