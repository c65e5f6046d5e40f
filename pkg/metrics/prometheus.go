package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	requests     *prometheus.HistogramVec
	errorsTotal  *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	ingestRows   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		requests: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algoforce_request_duration_seconds",
				Help:    "Duration of analytics operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoforce_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		storeLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algoforce_store_duration_seconds",
				Help:    "Duration of backing-store calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"store"},
		),
		ingestRows: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoforce_ingest_rows_total",
				Help: "Total number of ledger rows ingested",
			},
			[]string{"table"},
		),
	}
}

// RecordRequest records an analytics operation duration.
func (r *Recorder) RecordRequest(op string, seconds float64) {
	r.requests.WithLabelValues(op).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordStoreLatency records a backing-store call duration.
func (r *Recorder) RecordStoreLatency(store string, seconds float64) {
	r.storeLatency.WithLabelValues(store).Observe(seconds)
}

// RecordIngest records ingested ledger rows.
func (r *Recorder) RecordIngest(table string, rows int) {
	r.ingestRows.WithLabelValues(table).Add(float64(rows))
}
