// Package metrics exports Retrier activity to Prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jzx17/goretry/pkg/retry"
)

const (
	namespace = "goretry"
	subsystem = "retrier"
)

// PrometheusCollector implements retry.MetricsCollector on Prometheus metrics.
// Every metric carries a "retrier" label so several retriers can share a
// registry.
type PrometheusCollector struct {
	queued      prometheus.Counter
	attempts    prometheus.Counter
	settled     *prometheus.CounterVec
	settleAge   *prometheus.HistogramVec
	queueLength prometheus.Gauge
}

var _ retry.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the retrier metrics and registers them with reg
func NewPrometheusCollector(reg prometheus.Registerer, name string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"retrier": name}

	c := &PrometheusCollector{
		queued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "tasks_queued_total",
			Help:        "Total number of operations queued for background retry",
			ConstLabels: labels,
		}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "attempts_total",
			Help:        "Total number of operation executions, first attempts included",
			ConstLabels: labels,
		}),
		settled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "tasks_settled_total",
			Help:        "Total number of queued tasks settled, by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		settleAge: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "task_age_seconds",
			Help:        "Age of queued tasks when they settled",
			ConstLabels: labels,
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 6, 10, 30},
		}, []string{"outcome"}),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "queue_length",
			Help:        "Number of tasks waiting in the retry queue",
			ConstLabels: labels,
		}),
	}

	for _, collector := range []prometheus.Collector{c.queued, c.attempts, c.settled, c.settleAge, c.queueLength} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register retrier metrics for %q: %w", name, err)
		}
	}

	return c, nil
}

func (c *PrometheusCollector) RecordQueued() {
	c.queued.Inc()
}

func (c *PrometheusCollector) RecordAttempt() {
	c.attempts.Inc()
}

func (c *PrometheusCollector) RecordSettled(outcome retry.Outcome, age time.Duration) {
	c.settled.WithLabelValues(outcome.String()).Inc()
	c.settleAge.WithLabelValues(outcome.String()).Observe(age.Seconds())
}

func (c *PrometheusCollector) SetQueueLength(n int) {
	c.queueLength.Set(float64(n))
}
