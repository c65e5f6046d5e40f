package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/service/accounts"
	applogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubLedger struct{ healthErr error }

func (s *stubLedger) FetchEvents(context.Context, string, time.Time, time.Time) ([]models.LedgerEvent, error) {
	return nil, nil
}

func (s *stubLedger) FetchTrades(context.Context, string, time.Time, time.Time) ([]models.Trade, error) {
	return nil, nil
}

func (s *stubLedger) LatestSnapshotAt(context.Context, string, time.Time) (models.BalanceSnapshot, bool, error) {
	return models.BalanceSnapshot{}, false, nil
}

func (s *stubLedger) EarliestSnapshot(context.Context, string) (models.BalanceSnapshot, bool, error) {
	return models.BalanceSnapshot{}, false, nil
}

func (s *stubLedger) Health(context.Context) error { return s.healthErr }

type stubMetrics struct{}

func (stubMetrics) RecordRequest(string, float64)      {}
func (stubMetrics) RecordError(string)                 {}
func (stubMetrics) RecordStoreLatency(string, float64) {}
func (stubMetrics) RecordIngest(string, int)           {}

func testHandler(t *testing.T) *PerformanceHandler {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}
	acctPath := write("accounts.json", `[
		{"binanceName": "alpha", "strategy": "janus", "monitored": true},
		{"binanceName": "beta", "strategy": "janus", "monitored": false}
	]`)
	balPath := write("balance.json", `{}`)
	unrealPath := write("unrealized.json", `{}`)

	d, err := accounts.Load(acctPath, balPath, unrealPath)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	return NewPerformanceHandler(l, nil, nil, d, &stubLedger{}, stubMetrics{})
}

func doRequest(h *PerformanceHandler, method, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBulkMetricsMissingAccountsParam(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/metrics/bulk")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ERR_REQUIRED") {
		t.Fatalf("expected validation payload, got %s", rec.Body.String())
	}
}

func TestBulkMetricsEmptyAccountsParam(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/metrics/bulk?accounts=%20,%20")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountsMonitoredFilter(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/accounts?monitored=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alpha") || strings.Contains(body, "beta") {
		t.Fatalf("expected only monitored accounts, got %s", body)
	}
	if cc := rec.Header().Get(echo.HeaderCacheControl); cc != "private, max-age=30" {
		t.Fatalf("unexpected cache-control %q", cc)
	}
}

func TestAccountsInvalidMonitoredValue(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/accounts?monitored=maybe")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthReportsClickHouse(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"clickhouse":"ok"`) {
		t.Fatalf("expected clickhouse ok, got %s", rec.Body.String())
	}
}
