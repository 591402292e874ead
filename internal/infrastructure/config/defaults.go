package config

import "time"

// SetDefaults applies default values for any missing configuration
func SetDefaults(cfg *Config) {
	// Facility: n_reload and n_reserves default via viper.SetDefault in
	// LoadConfig, since an explicit zero must survive loading. refuel_time,
	// order_lookahead, and the initial condition default to 0.

	// Simulation
	if cfg.Simulation.Steps == 0 {
		cfg.Simulation.Steps = 10
	}

	// Database
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = ":memory:"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}

	// Metrics (disabled unless enabled explicitly)
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "127.0.0.1"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Daemon
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 5 * time.Second
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
