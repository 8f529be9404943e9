package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "farmchain"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "farmchain"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Chain gateway defaults
	if cfg.Chain.GatewayURL == "" {
		cfg.Chain.GatewayURL = "http://localhost:7070"
	}
	if cfg.Chain.Network == "" {
		// Testnet by default: no whitelist gate, no real tokens
		cfg.Chain.Network = "testnet"
	}
	if cfg.Chain.Timeout == 0 {
		cfg.Chain.Timeout = 10 * time.Second
	}
	if cfg.Chain.RateLimit.Requests == 0 {
		cfg.Chain.RateLimit.Requests = 20
	}
	if cfg.Chain.RateLimit.Burst == 0 {
		cfg.Chain.RateLimit.Burst = 20
	}
	if cfg.Chain.Retry.MaxAttempts == 0 {
		cfg.Chain.Retry.MaxAttempts = 3
	}
	if cfg.Chain.Retry.BackoffBase == 0 {
		cfg.Chain.Retry.BackoffBase = 500 * time.Millisecond
	}

	// Server defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8880"
	}
	if cfg.Server.PIDFile == "" {
		cfg.Server.PIDFile = "/tmp/farmd.pid"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
