package api

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	models "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	domrepo "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/repository"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/service/accounts"
	icache "github.com/247TeamAlgo/AlgoforceAnalytics/internal/service/cache"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/service/ratelimit"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/usecase"
	xhttp "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/http"
	xlogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"
	"github.com/247TeamAlgo/AlgoforceAnalytics/pkg/util"

	"github.com/labstack/echo/v4"
)

const (
	bulkCacheTTL = 5 * time.Second

	// Token bucket per client IP on the bulk endpoint. Bulk requests fan
	// out to ClickHouse per account, so bursts are the expensive case.
	bulkBurst  = 5.0
	bulkRefill = 2.0
)

// PerformanceHandler exposes the analytics API over Echo.
type PerformanceHandler struct {
	logger  *xlogger.Logger
	agg     *usecase.PerformanceAggregator
	liveEq  *usecase.LiveEquity
	dir     *accounts.Directory
	ledger  domrepo.LedgerStore
	metrics domrepo.Metrics

	respCache *icache.TTLCache
	limiter   *ratelimit.Limiter
}

func NewPerformanceHandler(
	logger *xlogger.Logger,
	agg *usecase.PerformanceAggregator,
	liveEq *usecase.LiveEquity,
	dir *accounts.Directory,
	ledger domrepo.LedgerStore,
	metrics domrepo.Metrics,
) *PerformanceHandler {
	return &PerformanceHandler{
		logger:    logger,
		agg:       agg,
		liveEq:    liveEq,
		dir:       dir,
		ledger:    ledger,
		metrics:   metrics,
		respCache: icache.NewTTLCache(),
		limiter:   ratelimit.New(),
	}
}

func (h *PerformanceHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/metrics/bulk", h.BulkMetrics)
	g.GET("/equity/live", h.LiveEquity)
	g.GET("/accounts", h.Accounts)
	g.GET("/health", h.Health)
}

func (h *PerformanceHandler) BulkMetrics(c echo.Context) error {
	start := time.Now()
	req := &models.BulkMetricsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	names := util.SplitCSVLower(req.Accounts)
	if len(names) == 0 {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_REQUIRED",
			Field:   "accounts",
			Message: "accounts is required",
		}})
	}
	if !h.limiter.Allow(c.RealIP(), bulkBurst, bulkRefill) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
	}

	key := cacheKey("bulk", names)
	if v, ok := h.respCache.Get(key); ok {
		c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=5")
		return xhttp.SuccessResponse(c, v)
	}

	res, err := h.agg.BulkMetrics(c.Request().Context(), names)
	if err != nil {
		h.logger.Error("bulk metrics usecase error", xlogger.Error(err))
		h.metrics.RecordError("bulk_metrics")
		return xhttp.AppErrorResponse(c, err)
	}
	h.respCache.Set(key, res, bulkCacheTTL)
	h.metrics.RecordRequest("metrics_bulk", time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=5")
	return xhttp.SuccessResponse(c, res)
}

func (h *PerformanceHandler) LiveEquity(c echo.Context) error {
	start := time.Now()
	req := &models.LiveEquityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	names := util.SplitCSVLower(req.Accounts)
	if len(names) == 0 {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_REQUIRED",
			Field:   "accounts",
			Message: "accounts is required",
		}})
	}

	res, err := h.liveEq.Compute(c.Request().Context(), names)
	if err != nil {
		h.logger.Error("live equity usecase error", xlogger.Error(err))
		h.metrics.RecordError("live_equity")
		return xhttp.AppErrorResponse(c, err)
	}
	h.metrics.RecordRequest("equity_live", time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=5")
	return xhttp.SuccessResponse(c, res)
}

func (h *PerformanceHandler) Accounts(c echo.Context) error {
	start := time.Now()
	req := &models.AccountsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	monitoredOnly := util.ParseBoolDefault(req.Monitored, false)

	list := h.dir.List(monitoredOnly)
	h.metrics.RecordRequest("accounts", time.Since(start).Seconds())

	// Directory contents change on deploy, not per request.
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, list)
}

func (h *PerformanceHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok", "clickhouse": "ok"}
	if err := h.ledger.Health(ctx); err != nil {
		h.logger.Warn("health check degraded", xlogger.Error(err))
		status["clickhouse"] = "down"
	}
	return xhttp.SuccessResponse(c, status)
}

func cacheKey(prefix string, names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return prefix + ":" + strings.Join(sorted, ",")
}
