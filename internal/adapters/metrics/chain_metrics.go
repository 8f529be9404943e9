package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ChainMetricsCollector handles on-chain gateway request metrics
type ChainMetricsCollector struct {
	chainRequestsTotal   *prometheus.CounterVec
	chainRequestDuration *prometheus.HistogramVec
}

// NewChainMetricsCollector creates a new chain metrics collector
func NewChainMetricsCollector() *ChainMetricsCollector {
	return &ChainMetricsCollector{
		chainRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chain_requests_total",
				Help:      "Total number of on-chain gateway requests by method and outcome",
			},
			[]string{"method", "outcome"},
		),

		chainRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "chain_request_duration_seconds",
				Help:      "On-chain gateway request duration by method",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// Register registers all chain metrics with the Prometheus registry
func (c *ChainMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.chainRequestsTotal,
		c.chainRequestDuration,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordChainRequest records a gateway request outcome and duration
func (c *ChainMetricsCollector) RecordChainRequest(method string, outcome string, seconds float64) {
	c.chainRequestsTotal.WithLabelValues(method, outcome).Inc()
	c.chainRequestDuration.WithLabelValues(method).Observe(seconds)
}
