package config

import "time"

// DaemonConfig holds long-running process configuration
type DaemonConfig struct {
	// PID file location; empty disables single-instance enforcement
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout for auxiliary servers
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
