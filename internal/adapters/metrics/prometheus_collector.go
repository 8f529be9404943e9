package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace for all metrics
const namespace = "farmchain"

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalEngineCollector is the singleton engine metrics collector
	// Set by SetGlobalEngineCollector() when metrics are enabled
	globalEngineCollector EngineMetricsRecorder

	// globalChainCollector is the singleton chain metrics collector
	// Set by SetGlobalChainCollector() when metrics are enabled
	globalChainCollector ChainMetricsRecorder
)

// EngineMetricsRecorder defines the interface for recording save and
// withdrawal engine events. This interface is used by application code
// to record metrics.
type EngineMetricsRecorder interface {
	RecordSave(outcome string, seconds float64)
	RecordActionReplayed(kind string)
	RecordBatchRejection(reason string)
	RecordWithdrawal(outcome string)
}

// ChainMetricsRecorder defines the interface for recording on-chain
// gateway request metrics
type ChainMetricsRecorder interface {
	RecordChainRequest(method string, outcome string, seconds float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalEngineCollector sets the global engine metrics collector
// This should be called after the collector is created and registered
func SetGlobalEngineCollector(collector EngineMetricsRecorder) {
	globalEngineCollector = collector
}

// SetGlobalChainCollector sets the global chain metrics collector
func SetGlobalChainCollector(collector ChainMetricsRecorder) {
	globalChainCollector = collector
}

// RecordSave records a save pipeline outcome globally
func RecordSave(outcome string, seconds float64) {
	if globalEngineCollector != nil {
		globalEngineCollector.RecordSave(outcome, seconds)
	}
}

// RecordActionReplayed records a successfully replayed action globally
func RecordActionReplayed(kind string) {
	if globalEngineCollector != nil {
		globalEngineCollector.RecordActionReplayed(kind)
	}
}

// RecordBatchRejection records a temporal gate rejection globally
func RecordBatchRejection(reason string) {
	if globalEngineCollector != nil {
		globalEngineCollector.RecordBatchRejection(reason)
	}
}

// RecordWithdrawal records a withdrawal preparation outcome globally
func RecordWithdrawal(outcome string) {
	if globalEngineCollector != nil {
		globalEngineCollector.RecordWithdrawal(outcome)
	}
}

// RecordChainRequest records an on-chain gateway request globally
func RecordChainRequest(method string, outcome string, seconds float64) {
	if globalChainCollector != nil {
		globalChainCollector.RecordChainRequest(method, outcome, seconds)
	}
}
