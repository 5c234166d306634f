package config

import (
	"os"
	"strings"
	"time"
)

// Default values for configuration.
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultConcurrency = 4
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "console"
)

// Environment variable names.
const (
	EnvSources  = "TALLY_SOURCES"
	EnvEncoding = "TALLY_ENCODING"
	EnvLogLevel = "TALLY_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Sources:     []string{},
		HTTPTimeout: DefaultHTTPTimeout,
		Concurrency: DefaultConcurrency,
		Output: OutputConfig{
			Format: OutputFormatText,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvironmentOverrides() {
	if v := os.Getenv(EnvSources); v != "" {
		var sources []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
		c.Sources = sources
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}
