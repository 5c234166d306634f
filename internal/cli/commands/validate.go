package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tally/pkg/config"
	"github.com/ccollicutt/tally/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a tally configuration file without reading any source.

Checks:
  - YAML syntax
  - At least one source, and well-formed URLs
  - Known encoding, output format and log settings
  - Local source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "utf-8"
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Sources:     %d pattern(s)\n", len(cfg.Sources))
	fmt.Fprintf(out, "  Encoding:    %s\n", encoding)
	fmt.Fprintf(out, "  Output:      %s\n", cfg.Output.Format)
	if cfg.Output.File != "" {
		mode := "overwrite"
		if cfg.Output.Append {
			mode = "append"
		}
		fmt.Fprintf(out, "  Report file: %s (%s)\n", cfg.Output.File, mode)
	}

	// Check if local sources exist (warnings only)
	locations, err := parser.ExpandLocations(cfg.Sources)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding source patterns: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "\nSources:\n")
	for _, loc := range locations {
		switch {
		case parser.IsURL(loc):
			fmt.Fprintf(out, "  - %s (url)\n", loc)
		case loc == parser.Stdin:
			fmt.Fprintf(out, "  - stdin\n")
		case fileExists(loc):
			fmt.Fprintf(out, "  - %s\n", loc)
		default:
			fmt.Fprintf(out, "  - %s (warning: not found)\n", loc)
		}
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
