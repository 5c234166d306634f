// Package config provides configuration loading and validation for tally.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Sources lists file paths, glob patterns, http(s) URLs or "-" for stdin.
	Sources []string `yaml:"sources"`

	// Encoding is the charset every source is decoded from.
	// Empty or "utf-8" reads bytes unchanged.
	Encoding string `yaml:"encoding,omitempty"`

	// HTTPTimeout bounds each URL fetch.
	HTTPTimeout time.Duration `yaml:"http_timeout,omitempty"`

	// Concurrency is the number of sources summed at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// KeepGoing records failing sources instead of stopping at the first one.
	KeepGoing bool `yaml:"keep_going,omitempty"`

	Output OutputConfig `yaml:"output,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
}

// OutputFormat selects how reports are rendered.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// OutputConfig controls where and how the report is written.
type OutputConfig struct {
	// Format is text or json. Defaults to text.
	Format OutputFormat `yaml:"format,omitempty"`

	// File additionally writes the report to this path.
	File string `yaml:"file,omitempty"`

	// Append adds to File instead of overwriting it.
	Append bool `yaml:"append,omitempty"`
}

// LogConfig configures diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // console or json
}
