package config

import (
	"fmt"

	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/logging"
)

// Config holds all configuration for the fmea tool.
//
// Example YAML:
//
//	log_level: info
//	log_levels:
//	  linkage: debug
//	normalizer:
//	  tie_break: insertion
//	  placeholders: ["(deleted)"]
//	cache:
//	  enabled: true
//	  size: 64
//	tracing:
//	  enabled: true
//	  endpoint: localhost:4317
//	watch:
//	  debounce_millis: 300
type Config struct {
	// LogLevel is the default logging level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogLevels overrides the level per logger name; "pkg.*" wildcards are allowed
	LogLevels map[string]string `yaml:"log_levels"`

	Normalizer NormalizerConfig `yaml:"normalizer"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Watch      WatchConfig      `yaml:"watch"`
}

// NormalizerConfig tunes the identity normalizer.
type NormalizerConfig struct {
	// TieBreak is "insertion" or "lexical"
	TieBreak string `yaml:"tie_break"`

	// Placeholders are soft-delete texts that never act as match keys
	Placeholders []string `yaml:"placeholders"`
}

// CacheConfig controls the recompute cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

// MetricsConfig controls prometheus metric collection.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TracingConfig controls OTLP trace export.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	TLSCAPath   string `yaml:"tls_ca_path"`
	TLSInsecure bool   `yaml:"tls_insecure"`
}

// WatchConfig controls `fmea watch`.
type WatchConfig struct {
	// DebounceMillis coalesces editor save bursts into one recompute
	DebounceMillis int `yaml:"debounce_millis"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Normalizer: NormalizerConfig{
			TieBreak: string(linkage.TieBreakInsertion),
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    64,
		},
		Metrics: MetricsConfig{Enabled: true},
		Watch:   WatchConfig{DebounceMillis: 300},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return NewConfigError(fmt.Sprintf("log_level: %v", err))
	}

	for pkg, level := range c.LogLevels {
		if _, err := logging.ParseLevel(level); err != nil {
			return NewConfigError(fmt.Sprintf("log_levels[%s]: %v", pkg, err))
		}
	}

	if _, err := linkage.ParseTieBreak(c.Normalizer.TieBreak); err != nil {
		return NewConfigError(fmt.Sprintf("normalizer.tie_break: %v", err))
	}

	if c.Cache.Enabled && c.Cache.Size < 1 {
		return NewConfigError("cache.size must be at least 1 when the cache is enabled")
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return NewConfigError("tracing.endpoint must be set when tracing is enabled")
	}

	if c.Watch.DebounceMillis < 0 {
		return NewConfigError("watch.debounce_millis must not be negative")
	}

	return nil
}

// LinkageOptions converts the normalizer section. Call Validate first;
// an invalid tie-break falls back to insertion order.
func (c *Config) LinkageOptions() linkage.Options {
	tb, err := linkage.ParseTieBreak(c.Normalizer.TieBreak)
	if err != nil {
		tb = linkage.TieBreakInsertion
	}
	return linkage.Options{
		TieBreak:     tb,
		Placeholders: append([]string(nil), c.Normalizer.Placeholders...),
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.message
}
