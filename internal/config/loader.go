package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "RISKFUSE_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RISKFUSE_CONFIG is set
//  3. env (prefix RISKFUSE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RISKFUSE_ADDR, RISKFUSE_RETENTION_LIMIT, ...
	// Map env keys like RISKFUSE_MODEL_PATH -> model_path (flat keys,
	// underscores preserved to match the koanf tags on the struct).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile builds a Config from defaults plus a specific YAML file, without
// consulting env vars. Used by the config watcher on reload.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PortScanAttempts < 1:
		return fmt.Errorf("%w: port_scan_attempts must be at least 1", ErrInvalidConfig)
	case c.ErrorRateThreshold <= 0 || c.ErrorRateThreshold > 1:
		return fmt.Errorf("%w: error_rate_threshold must be in (0, 1]", ErrInvalidConfig)
	case c.RemoteLatencyMinMS <= 0 || c.RemoteLatencyMaxMS <= c.RemoteLatencyMinMS:
		return fmt.Errorf("%w: remote latency range must satisfy 0 < min < max", ErrInvalidConfig)
	}
	return nil
}
