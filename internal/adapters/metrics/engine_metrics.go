package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetricsCollector handles save pipeline and withdrawal metrics
type EngineMetricsCollector struct {
	savesTotal           *prometheus.CounterVec
	saveDuration         prometheus.Histogram
	actionsReplayedTotal *prometheus.CounterVec
	batchRejectionsTotal *prometheus.CounterVec
	withdrawalsTotal     *prometheus.CounterVec
}

// NewEngineMetricsCollector creates a new engine metrics collector
func NewEngineMetricsCollector() *EngineMetricsCollector {
	return &EngineMetricsCollector{
		savesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "saves_total",
				Help:      "Total number of save requests by outcome",
			},
			[]string{"outcome"},
		),

		saveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "save_duration_seconds",
				Help:      "End-to-end save pipeline duration",
				Buckets:   prometheus.DefBuckets,
			},
		),

		actionsReplayedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_replayed_total",
				Help:      "Total number of actions replayed by kind",
			},
			[]string{"kind"},
		),

		batchRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_rejections_total",
				Help:      "Total number of action batches rejected by the temporal gate",
			},
			[]string{"reason"},
		),

		withdrawalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "withdrawals_total",
				Help:      "Total number of withdrawal signature requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Register registers all engine metrics with the Prometheus registry
func (c *EngineMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.savesTotal,
		c.saveDuration,
		c.actionsReplayedTotal,
		c.batchRejectionsTotal,
		c.withdrawalsTotal,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordSave records a completed save attempt and its duration
func (c *EngineMetricsCollector) RecordSave(outcome string, seconds float64) {
	c.savesTotal.WithLabelValues(outcome).Inc()
	c.saveDuration.Observe(seconds)
}

// RecordActionReplayed increments the replayed-action counter for a kind
func (c *EngineMetricsCollector) RecordActionReplayed(kind string) {
	c.actionsReplayedTotal.WithLabelValues(kind).Inc()
}

// RecordBatchRejection increments the gate rejection counter for a reason
func (c *EngineMetricsCollector) RecordBatchRejection(reason string) {
	c.batchRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordWithdrawal records a withdrawal signature request outcome
func (c *EngineMetricsCollector) RecordWithdrawal(outcome string) {
	c.withdrawalsTotal.WithLabelValues(outcome).Inc()
}
