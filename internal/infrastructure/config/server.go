package config

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	// Listen address (host:port)
	Listen string `mapstructure:"listen" validate:"required"`

	// PID file location
	PIDFile string `mapstructure:"pid_file"`
}
