// Package config provides the configuration system for the pooling runtime.
// It defines a single Config structure shared by the library's composition
// root and the CLI, organized into logical sections:
//
//   - Pool: initial sizing and pooling behavior
//   - Observability: logging, metrics, and tracing settings
//
// Example usage:
//
//	cfg := config.NewDefaultConfig("particles")
//	cfg.Pool.InitialSize = 64
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
)

// DefaultInitialPoolSize is the number of instances a pool is seeded with
// when its type is first acquired through a registry.
const DefaultInitialPoolSize = 1

// Config is the unified configuration structure for the pooling runtime.
type Config struct {
	// Name identifies the application or simulation instance
	Name string `yaml:"name" json:"name"`
	// Version indicates the configuration version
	Version string `yaml:"version" json:"version"`

	// Pool settings control pool construction and growth
	Pool PoolConfig `yaml:"pool" json:"pool"`

	// Observability settings for monitoring and debugging
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// PoolConfig contains pooling behavior settings.
type PoolConfig struct {
	// InitialSize is the number of instances constructed when a pool is
	// lazily created for a previously-unseen type
	InitialSize int `yaml:"initial_size" json:"initial_size"`
	// EnableMetrics activates Prometheus pool metrics
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// Debug enables pool dump output on expansion
	Debug bool `yaml:"debug" json:"debug"`
}

// ObservabilityConfig contains monitoring and observability settings.
type ObservabilityConfig struct {
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`
	// LogFormat selects the log encoding (json, console)
	LogFormat string `yaml:"log_format" json:"log_format"`
	// EnableTracing activates tracing for CLI runs
	EnableTracing bool `yaml:"enable_tracing" json:"enable_tracing"`
}

// NewDefaultConfig creates a Config with sensible defaults. Callers override
// individual fields as needed and then call Validate.
func NewDefaultConfig(name string) *Config {
	return &Config{
		Name:    name,
		Version: "1.0.0",
		Pool: PoolConfig{
			InitialSize:   DefaultInitialPoolSize,
			EnableMetrics: true,
			Debug:         false,
		},
		Observability: ObservabilityConfig{
			LogLevel:      "info",
			LogFormat:     "json",
			EnableTracing: false,
		},
	}
}

// Validate validates the configuration for correctness.
// It checks required fields and ensures values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Pool.InitialSize <= 0 {
		return fmt.Errorf("initial_size must be positive")
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.Observability.LogLevel)
	}
	switch c.Observability.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log_format: %s", c.Observability.LogFormat)
	}
	return nil
}
