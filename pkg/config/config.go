package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/tally/internal/logging"
	"github.com/ccollicutt/tally/pkg/parser"
)

// Load reads and validates a configuration file.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read parses a configuration file and applies environment overrides
// without validating it, so callers can merge command-line values first.
func Read(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults for
// zero-valued optional fields.
func Validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return errors.New("sources: at least one source is required")
	}

	for i, src := range cfg.Sources {
		if err := validateSource(src); err != nil {
			return fmt.Errorf("sources[%d] (%s): %w", i, src, err)
		}
	}

	if _, err := parser.LookupEncoding(cfg.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	if cfg.HTTPTimeout < 0 {
		return errors.New("http_timeout: must not be negative")
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}

	if cfg.Concurrency < 0 {
		return errors.New("concurrency: must be >= 1")
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func validateSource(src string) error {
	if src == "" {
		return errors.New("source must not be empty")
	}

	if !parser.IsURL(src) {
		return nil
	}

	u, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	return nil
}

func validateOutput(out *OutputConfig) error {
	switch out.Format {
	case "":
		out.Format = OutputFormatText
	case OutputFormatText, OutputFormatJSON:
		// Valid
	default:
		return fmt.Errorf("invalid format %q (must be text or json)", out.Format)
	}

	if out.Append && out.File == "" {
		return errors.New("append requires file")
	}

	return nil
}

func validateLog(l *LogConfig) error {
	if !logging.ValidLevel(l.Level) {
		return fmt.Errorf("invalid level %q", l.Level)
	}
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}

	switch l.Format {
	case "":
		l.Format = DefaultLogFormat
	case "console", "json":
		// Valid
	default:
		return fmt.Errorf("invalid format %q (must be console or json)", l.Format)
	}

	return nil
}
