package config

// MetricsConfig holds metrics collection configuration. Collectors are
// registered at startup and served on the main listener at /metrics.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
