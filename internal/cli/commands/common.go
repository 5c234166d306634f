package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tally/internal/logging"
	"github.com/ccollicutt/tally/pkg/config"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// setupLogging initialises the root logger from the config, letting the
// --log-level and --log-format flags win when set.
func setupLogging(cmd *cobra.Command, cfg config.LogConfig) *logging.Logger {
	if v := stringFlag(cmd, "log-level"); v != "" {
		cfg.Level = v
	}
	if v := stringFlag(cmd, "log-format"); v != "" {
		cfg.Format = v
	}
	if cfg.Level == "" {
		cfg.Level = config.DefaultLogLevel
	}

	return logging.Init(logging.Options{
		Level:  cfg.Level,
		Format: cfg.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

func stringFlag(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}
