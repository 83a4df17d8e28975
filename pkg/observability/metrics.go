package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sketchddd/application/ports"
)

var _ ports.Metrics = (*Collector)(nil)
var _ ports.Metrics = NoopMetrics{}

// Collector holds the Prometheus metrics of the model service
type Collector struct {
	registry *prometheus.Registry

	ValidationRuns     *prometheus.CounterVec
	ValidationIssues   *prometheus.CounterVec
	ValidationDuration prometheus.Histogram

	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// NewCollector creates a collector on its own registry, so repeated
// construction in tests never collides with global registration
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		ValidationRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_runs_total",
				Help:      "Total number of model validation runs",
			},
			[]string{"ok"},
		),
		ValidationIssues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_issues_total",
				Help:      "Total number of diagnostics reported by validation",
			},
			[]string{"severity"},
		),
		ValidationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Model validation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of model service operations",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Model service operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		c.ValidationRuns,
		c.ValidationIssues,
		c.ValidationDuration,
		c.Operations,
		c.OperationDuration,
	)
	return c
}

// RecordValidation records one validation run
func (c *Collector) RecordValidation(ctx context.Context, errorCount, warningCount int, duration time.Duration) {
	c.ValidationRuns.WithLabelValues(strconv.FormatBool(errorCount == 0)).Inc()
	c.ValidationIssues.WithLabelValues("error").Add(float64(errorCount))
	c.ValidationIssues.WithLabelValues("warning").Add(float64(warningCount))
	c.ValidationDuration.Observe(duration.Seconds())
}

// RecordOperation records a service operation
func (c *Collector) RecordOperation(ctx context.Context, operation string, success bool, duration time.Duration) {
	c.Operations.WithLabelValues(operation, status(success)).Inc()
	c.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// NoopMetrics discards all measurements
type NoopMetrics struct{}

// RecordValidation does nothing
func (NoopMetrics) RecordValidation(context.Context, int, int, time.Duration) {}

// RecordOperation does nothing
func (NoopMetrics) RecordOperation(context.Context, string, bool, time.Duration) {}

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
