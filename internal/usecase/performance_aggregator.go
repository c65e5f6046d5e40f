package usecase

import (
	"context"
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	domrepo "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/repository"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/service/accounts"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/services/equity"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/services/perfstats"
	applogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/util"
)

// PerformanceAggregator orchestrates the full bulk-metrics pipeline: opening
// anchors, realized and margin equity frames, derived statistics, strategy
// rollups, and final rounding. It holds no mutable state between requests;
// every call is a pure function of the request, the clock, and the stores.
type PerformanceAggregator struct {
	ledger    domrepo.LedgerStore
	snaps     domrepo.SnapshotStore
	dir       *accounts.Directory
	metrics   domrepo.Metrics
	l         *applogger.Logger
	curveCfg  equity.CurveConfig
	streakCfg perfstats.StreakConfig
	now       func() time.Time
}

func NewPerformanceAggregator(
	ledger domrepo.LedgerStore,
	snaps domrepo.SnapshotStore,
	dir *accounts.Directory,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	curveCfg equity.CurveConfig,
	streakCfg perfstats.StreakConfig,
) *PerformanceAggregator {
	return &PerformanceAggregator{
		ledger:    ledger,
		snaps:     snaps,
		dir:       dir,
		metrics:   metrics,
		l:         l,
		curveCfg:  curveCfg,
		streakCfg: streakCfg,
		now:       time.Now,
	}
}

// SetClock overrides wall-clock time. Used by tests.
func (a *PerformanceAggregator) SetClock(now func() time.Time) { a.now = now }

// BulkMetrics computes the whole payload for the requested accounts over the
// MTD window. Per-account store failures degrade that account's data to zero
// and flag it; only a fundamentally unusable request errors out.
func (a *PerformanceAggregator) BulkMetrics(ctx context.Context, names []string) (*models.BulkMetricsPayload, error) {
	now := a.now()
	startDay, endDay := util.MTDWindow(now)
	flags := make(map[string][]string)
	flag := func(acct, msg string) { flags[acct] = append(flags[acct], msg) }

	live, err := a.snaps.FetchUnrealized(ctx, names)
	if err != nil {
		a.l.Warn("unrealized snapshot fetch degraded", applogger.Error(err))
		a.metrics.RecordError("snapshot_fetch")
		live = map[string]float64{"total": 0.0}
		for _, n := range names {
			live[n] = 0.0
		}
	}

	resolver := NewOpeningBalanceResolver(a.ledger, a.curveCfg)
	realized := equity.NewFrame(startDay, endDay)
	offsets := make(map[string]float64, len(names))
	tradesByAcct := make(map[string][]models.Trade, len(names))
	eventsTotal := 0
	anchoredAny := false

	for _, acct := range names {
		dbName := a.dir.DBName(acct)

		initial, anchored, err := resolver.Resolve(ctx, dbName, startDay)
		if err != nil {
			a.l.Warn("opening balance degraded",
				applogger.String("account", acct), applogger.Error(err))
			a.metrics.RecordError("opening_balance")
			flag(acct, "opening balance unavailable")
			initial = 0.0
		} else if anchored {
			anchoredAny = true
		} else {
			flag(acct, "zero initial balance")
		}

		events, err := a.ledger.FetchEvents(ctx, dbName, startDay, now)
		if err != nil {
			a.l.Warn("ledger events degraded",
				applogger.String("account", acct), applogger.Error(err))
			a.metrics.RecordError("fetch_events")
			flag(acct, "ledger events unavailable")
			events = nil
		}
		eventsTotal += len(events)
		realized.SetColumn(acct, equity.BuildDaily(events, initial, startDay, endDay, a.curveCfg))

		trades, err := a.ledger.FetchTrades(ctx, dbName, startDay, now)
		if err != nil {
			a.l.Warn("ledger trades degraded",
				applogger.String("account", acct), applogger.Error(err))
			a.metrics.RecordError("fetch_trades")
			flag(acct, "trades unavailable")
			trades = nil
		}
		tradesByAcct[acct] = trades

		offsets[acct] = a.dir.UnrealizedBaseline(acct)
	}

	// preLive is the margin series before live injection: the drawdown peak
	// for the margin scope comes from it, never from injected values.
	preLive := equity.InjectMargin(realized, offsets, nil)
	margin := equity.InjectMargin(realized, offsets, live)

	payload := &models.BulkMetricsPayload{
		Window: map[string]string{
			"start": util.FormatDay(startDay),
			"end":   util.FormatDay(endDay),
			"as_of": util.FormatISO(now),
		},
		Realized:   a.scopeMetrics(realized, realized, live),
		Margin:     a.scopeMetrics(margin, preLive, live),
		LosingDays: a.losingDays(tradesByAcct, names, startDay, endDay, now),
		SymbolPnl:  symbolPayload(perfstats.SymbolPnL(tradesByAcct)),
		UPnl:       a.upnlPayload(now, names, live),
		Strategies: a.strategyRollups(realized, preLive, live, names),
	}
	if len(flags) > 0 {
		payload.Meta = models.MetaPayload{Flags: flags}
	}
	if eventsTotal == 0 && !anchoredAny {
		payload.Message = "no ledger data available for this window"
	}
	return payload, nil
}

// scopeMetrics derives the per-scope statistics. peak supplies the level
// series used for drawdown peaks; for the margin scope it is the uninjected
// variant, which makes the current drawdown deliberately asymmetric.
func (a *PerformanceAggregator) scopeMetrics(frame, peak *equity.Frame, live map[string]float64) models.ScopeMetrics {
	days := frame.Days
	sm := models.ScopeMetrics{
		Equity:        roundEquity(frame.ToPayload()),
		MTDReturn:     make(map[string]float64, len(frame.Accounts)+1),
		MonthlyReturn: make(map[string]float64, len(frame.Accounts)+1),
		Drawdown: models.DrawdownPayload{
			Current: make(map[string]float64, len(frame.Accounts)+1),
			Max:     make(map[string]float64, len(frame.Accounts)+1),
		},
	}

	fill := func(name string, levels, peakLevels []float64, liveAdd float64) {
		sm.MTDReturn[name] = util.Round6(perfstats.MTDReturn(days, levels))
		sm.MonthlyReturn[name] = util.Round6(latestMonthlyReturn(days, levels))
		sm.Drawdown.Max[name] = util.Round6(perfstats.MaxDrawdown(levels))
		sm.Drawdown.Current[name] = util.Round6(perfstats.CurrentDrawdown(peakLevels, liveAdd))
	}

	for _, acct := range frame.Accounts {
		fill(acct, frame.Column(acct), peak.Column(acct), live[acct])
	}
	fill(equity.TotalColumn, frame.Total(), peak.Total(), live[equity.TotalColumn])
	return sm
}

func latestMonthlyReturn(days []time.Time, levels []float64) float64 {
	if len(days) == 0 {
		return 0.0
	}
	monthly := perfstats.MonthlyReturn(days, perfstats.PctReturns(levels))
	return monthly[days[len(days)-1].UTC().Format("2006-01")]
}

func (a *PerformanceAggregator) losingDays(
	tradesByAcct map[string][]models.Trade,
	names []string,
	startDay, endDay, now time.Time,
) map[string]models.LosingStreakPayload {
	cfg := a.streakCfg
	cfg.LastComplete = util.LastCompleteDay(now, a.curveCfg.CutHour)

	out := make(map[string]models.LosingStreakPayload, len(names)+1)
	var combined []float64
	var days []time.Time
	for _, acct := range names {
		idx, vals := perfstats.DailyTradePnL(tradesByAcct[acct], startDay, endDay, a.curveCfg.CutHour)
		streak := perfstats.LosingStreak(idx, vals, cfg)
		out[acct] = models.LosingStreakPayload{
			Consecutive: streak.Consecutive,
			Days:        util.Round6Map(streak.Days),
		}
		days = idx
		if combined == nil {
			combined = make([]float64, len(vals))
		}
		combined = perfstats.SumSeries(combined, vals)
	}
	if combined != nil {
		streak := perfstats.LosingStreak(days, combined, cfg)
		out["combined"] = models.LosingStreakPayload{
			Consecutive: streak.Consecutive,
			Days:        util.Round6Map(streak.Days),
		}
	}
	return out
}

func (a *PerformanceAggregator) upnlPayload(now time.Time, names []string, live map[string]float64) models.UPnlPayload {
	per := make(map[string]float64, len(names))
	for _, acct := range names {
		per[acct] = util.Round6(live[acct])
	}
	return models.UPnlPayload{
		AsOf:       util.FormatISO(now),
		Combined:   util.Round6(live[equity.TotalColumn]),
		PerAccount: per,
	}
}

// strategyRollups recomputes return and drawdown on each strategy group's
// own total series; group metrics are never combined from per-account
// percentages.
func (a *PerformanceAggregator) strategyRollups(
	realized, preLive *equity.Frame,
	live map[string]float64,
	names []string,
) map[string]models.StrategyMetrics {
	groups := a.dir.Strategies(names)
	out := make(map[string]models.StrategyMetrics, len(groups))
	for strategy, members := range groups {
		subRealized := realized.Subset(members)
		subPreLive := preLive.Subset(members)

		var liveSum float64
		for _, acct := range members {
			liveSum += live[acct]
		}

		days := realized.Days
		realizedTotal := subRealized.Total()
		preLiveTotal := subPreLive.Total()
		marginTotal := append([]float64(nil), preLiveTotal...)
		if n := len(marginTotal); n > 0 {
			marginTotal[n-1] += liveSum
		}
		out[strategy] = models.StrategyMetrics{
			Accounts: members,
			MTDReturn: map[string]float64{
				"realized": util.Round6(perfstats.MTDReturn(days, realizedTotal)),
				"margin":   util.Round6(perfstats.MTDReturn(days, marginTotal)),
			},
			Drawdown: models.DrawdownPayload{
				Current: map[string]float64{
					"realized": util.Round6(perfstats.CurrentDrawdown(realizedTotal, liveSum)),
					"margin":   util.Round6(perfstats.CurrentDrawdown(preLiveTotal, liveSum)),
				},
				Max: map[string]float64{
					"realized": util.Round6(perfstats.MaxDrawdown(realizedTotal)),
					"margin":   util.Round6(perfstats.MaxDrawdown(marginTotal)),
				},
			},
		}
	}
	return out
}

func symbolPayload(b perfstats.SymbolBreakdown) models.SymbolPnlPayload {
	for _, row := range b.Symbols {
		util.Round6Map(row)
	}
	return models.SymbolPnlPayload{
		Symbols:         b.Symbols,
		TotalPerAccount: util.Round6Map(b.TotalPerAccount),
	}
}

func roundEquity(eq map[string]map[string]float64) map[string]map[string]float64 {
	for _, row := range eq {
		util.Round6Map(row)
	}
	return eq
}
