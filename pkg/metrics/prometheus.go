package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsPrepared  *prometheus.CounterVec
	rowsProcessed *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsPrepared: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendml_runs_prepared_total",
				Help: "Total number of dataset preparation runs",
			},
			[]string{"symbol", "status"},
		),
		rowsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendml_rows_processed_total",
				Help: "Total number of candle rows processed per stage",
			},
			[]string{"stage"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendml_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendml_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordRunPrepared records a completed preparation run.
func (r *Recorder) RecordRunPrepared(symbol, status string) {
	r.runsPrepared.WithLabelValues(symbol, status).Inc()
}

// RecordRowsProcessed records rows flowing through a stage.
func (r *Recorder) RecordRowsProcessed(stage string, rows int) {
	r.rowsProcessed.WithLabelValues(stage).Add(float64(rows))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordStageDuration records stage latency in seconds.
func (r *Recorder) RecordStageDuration(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}
