// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file and env vars on top.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the preferred HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// PortScanAttempts bounds how many successive ports are tried when the
	// preferred one is busy.
	PortScanAttempts int `koanf:"port_scan_attempts"`

	// ModelPath locates the local model weights and label encoders.
	ModelPath string `koanf:"model_path"`

	// RetentionLimit bounds the event store per event kind.
	// Zero keeps every event for the process lifetime.
	RetentionLimit int `koanf:"retention_limit"`

	// ErrorRateThreshold degrades health when the recent error rate
	// exceeds it.
	ErrorRateThreshold float64 `koanf:"error_rate_threshold"`

	// RemoteLatencyMinMS and RemoteLatencyMaxMS bound the simulated remote
	// classifier latency.
	RemoteLatencyMinMS int `koanf:"remote_latency_min_ms"`
	RemoteLatencyMaxMS int `koanf:"remote_latency_max_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8000",
		PortScanAttempts:   10,
		ModelPath:          "models/local_model.json",
		RetentionLimit:     0,
		ErrorRateThreshold: 0.5,
		RemoteLatencyMinMS: 80,
		RemoteLatencyMaxMS: 150,
	}
}
