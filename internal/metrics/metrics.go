// Package metrics exposes Prometheus instrumentation for store writes,
// operation failures and analytics latency.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/repository/store"
)

// Failure classes used as the class label.
const (
	ClassInvalidPayload = "invalid_payload"
	ClassNotFound       = "not_found"
	ClassUndefined      = "undefined_metric"
	ClassInternal       = "internal"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	recordsWritten    *prometheus.CounterVec
	operationFailures *prometheus.CounterVec
	analyticsDuration *prometheus.HistogramVec
}

// New registers the collectors on registerer (the default registerer when nil).
func New(registerer prometheus.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		recordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "abattoir_records_written_total",
			Help: "Entity records written to the stores, by kind.",
		}, []string{"kind"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "abattoir_operation_failures_total",
			Help: "Rejected or failed operations by operation and error class.",
		}, []string{"operation", "class"}),
		analyticsDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "abattoir_analytics_duration_seconds",
			Help:    "Latency of analytics queries.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"query"}),
	}

	for _, c := range []prometheus.Collector{m.recordsWritten, m.operationFailures, m.analyticsDuration} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordWrite counts one record written to the partition of the given kind.
func (m *Metrics) RecordWrite(kind string) {
	if m == nil {
		return
	}
	m.recordsWritten.WithLabelValues(kind).Inc()
}

// RecordFailure counts a failed operation under its error class.
func (m *Metrics) RecordFailure(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.operationFailures.WithLabelValues(operation, Classify(err)).Inc()
}

// ObserveAnalytics records how long an analytics query took.
func (m *Metrics) ObserveAnalytics(query string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyticsDuration.WithLabelValues(query).Observe(elapsed.Seconds())
}

// Classify maps an error onto a low-cardinality class label.
func Classify(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidPayload), errors.Is(err, store.ErrRecordTooLarge):
		return ClassInvalidPayload
	case errors.Is(err, models.ErrNotFound):
		return ClassNotFound
	case errors.Is(err, models.ErrUndefinedMetric):
		return ClassUndefined
	default:
		return ClassInternal
	}
}
