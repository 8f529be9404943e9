package config

import "time"

// ChainConfig holds chain gateway client configuration
type ChainConfig struct {
	// Base URL of the chain gateway service
	GatewayURL string `mapstructure:"gateway_url" validate:"required,url"`

	// Network decides whether the whitelist gate is enforced:
	// mainnet saves require a whitelisted sender, testnet saves don't
	Network string `mapstructure:"network" validate:"required,oneof=mainnet testnet"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum retry attempts per request
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base delay for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// Mainnet reports whether the engine runs against the production chain
func (c ChainConfig) Mainnet() bool {
	return c.Network == "mainnet"
}
