// Package cli provides the command-line interface for tally.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tally/internal/cli/commands"
	"github.com/ccollicutt/tally/pkg/parser"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return commands.ExitCode
	case parser.IsDataError(err):
		return 1
	default:
		return 2 // Configuration or runtime error
	}
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Total the numeric data lines of header-prefixed text files",
		Long: `tally totals fixed-format numeric text files such as the HOPEDALE fur series.

The first line of every file is a description and is always skipped. Lines
starting with '#' that follow it are comments and are skipped too. Every
remaining line must hold one base-10 integer.

Sources can be local files, glob patterns, http(s) URLs or '-' for stdin.

Exit codes:
  0 - All sources totalled
  1 - A source held malformed data or no data at all
  2 - Configuration or runtime error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (console|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewSumCommand())
	rootCmd.AddCommand(commands.NewLinesCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
