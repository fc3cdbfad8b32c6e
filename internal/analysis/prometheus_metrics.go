package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records analysis telemetry via the default registry.
type PrometheusMetrics struct {
	analysesTotal   *prometheus.CounterVec
	analysisSeconds *prometheus.HistogramVec
	rejectedRecords *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analysis_operations_total",
				Help: "Total number of analysis operations executed",
			},
			[]string{"operation", "status"},
		),
		analysisSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analysis_duration_seconds",
				Help:    "Analysis operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"operation"},
		),
		rejectedRecords: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analysis_rejected_records_total",
				Help: "Total number of malformed records skipped during batch analysis",
			},
			[]string{"operation"},
		),
	}
}

func (m *PrometheusMetrics) RecordAnalysis(operation, status string) {
	m.analysesTotal.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) RecordDuration(operation string, duration time.Duration) {
	m.analysisSeconds.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRejectedRecords(operation string, count int) {
	if count > 0 {
		m.rejectedRecords.WithLabelValues(operation).Add(float64(count))
	}
}

// NoopMetrics discards all telemetry. Used in tests and in callers that run
// the analysis core without a metrics endpoint.
type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorderInterface { return NoopMetrics{} }

func (NoopMetrics) RecordAnalysis(string, string)        {}
func (NoopMetrics) RecordDuration(string, time.Duration) {}
func (NoopMetrics) RecordRejectedRecords(string, int)    {}
