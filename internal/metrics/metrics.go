package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// defaultBuckets are histogram buckets for duration metrics (in seconds).
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec

	UsageRecordedTotal   prometheus.Counter
	PollerRefreshesTotal prometheus.Counter
	CircuitBreakerState  *prometheus.GaugeVec
}

// New creates and registers all collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finetune_gateway",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "finetune_gateway",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finetune_gateway",
				Subsystem: "provider",
				Name:      "requests_total",
				Help:      "Total number of outbound provider calls",
			},
			[]string{"endpoint", "outcome"},
		),
		ProviderRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "finetune_gateway",
				Subsystem: "provider",
				Name:      "request_duration_seconds",
				Help:      "Outbound provider call latency",
				Buckets:   defaultBuckets,
			},
			[]string{"endpoint"},
		),
		UsageRecordedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "finetune_gateway",
				Subsystem: "ledger",
				Name:      "usage_recorded_total",
				Help:      "Total number of metered proxy calls recorded",
			},
		),
		PollerRefreshesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "finetune_gateway",
				Subsystem: "poller",
				Name:      "refreshes_total",
				Help:      "Total number of job status refresh passes",
			},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "finetune_gateway",
				Subsystem: "provider",
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"breaker"},
		),
	}
}

// ObserveProvider records one outbound provider call.
func (m *Metrics) ObserveProvider(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProviderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.ProviderRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
