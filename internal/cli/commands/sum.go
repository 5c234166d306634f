package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tally/pkg/config"
	"github.com/ccollicutt/tally/pkg/output"
	"github.com/ccollicutt/tally/pkg/parser"
	"github.com/ccollicutt/tally/pkg/tally"
)

// SumOptions holds command-line options for the sum command.
type SumOptions struct {
	ConfigFile  string
	Output      string
	Verbose     bool
	Quiet       bool
	Encoding    string
	Timeout     time.Duration
	Concurrency int
	KeepGoing   bool
	WriteFile   string
	Append      bool
}

// NewSumCommand creates the sum command.
func NewSumCommand() *cobra.Command {
	opts := &SumOptions{}

	cmd := &cobra.Command{
		Use:   "sum [location...]",
		Short: "Total the data lines of one or more sources",
		Long: `Total the data lines of each source and report a grand total.

Locations are file paths, glob patterns, http(s) URLs or '-' for stdin.
Locations given on the command line replace the sources of --config.

Examples:
  tally sum data/hopedale.txt
  tally sum 'data/*.txt' -o json
  tally sum https://robjhyndman.com/tsdldata/ecology1/hopedale.dat
  tally sum --config tally.yaml --write totals.txt --append`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show header text, line counts and timings")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "Charset of the sources (e.g. latin1)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", config.DefaultHTTPTimeout, "Timeout for URL sources")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", config.DefaultConcurrency, "Number of sources read at once")
	cmd.Flags().BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "Report failing sources instead of stopping at the first")
	cmd.Flags().StringVarP(&opts.WriteFile, "write", "w", "", "Also write the report to this file")
	cmd.Flags().BoolVarP(&opts.Append, "append", "a", false, "Append to the --write file instead of overwriting it")

	return cmd
}

func runSum(cmd *cobra.Command, args []string, opts *SumOptions) error {
	ctx := commandContext(cmd)

	cfg, err := resolveSumConfig(cmd, args, opts)
	if err != nil {
		return err
	}

	log := setupLogging(cmd, cfg.Log).With().Str("component", "sum").Logger()

	locations, err := parser.ExpandLocations(cfg.Sources)
	if err != nil {
		return fmt.Errorf("expanding sources: %w", err)
	}
	log.Debug().Strs("sources", locations).Msg("summing sources")

	run, err := tally.Sum(ctx, locations, tally.Options{
		Concurrency: cfg.Concurrency,
		KeepGoing:   cfg.KeepGoing,
		Open: []parser.Option{
			parser.WithEncoding(cfg.Encoding),
			parser.WithTimeout(cfg.HTTPTimeout),
			parser.WithStdin(cmd.InOrStdin()),
		},
	})
	if err != nil {
		return err
	}

	report, err := output.NewReport(run)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(string(cfg.Output.Format), output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if cfg.Output.File != "" {
		if err := output.WriteFile(ctx, cfg.Output.File, cfg.Output.Append, formatter, report); err != nil {
			return err
		}
		log.Debug().Str("file", cfg.Output.File).Bool("append", cfg.Output.Append).Msg("report written")
	}

	ExitCode = failureExitCode(run)

	return nil
}

// failureExitCode returns 0 when every source was totalled, 1 when every
// failure was caused by source content and 2 when any source could not be
// read at all.
func failureExitCode(run *tally.Run) int {
	code := 0
	for _, s := range run.Sources {
		if s.OK() {
			continue
		}
		if !parser.IsDataError(s.Err) {
			return 2
		}
		code = 1
	}
	return code
}

// resolveSumConfig merges the config file, positional locations and flags.
// Flags only override the config file when explicitly set.
func resolveSumConfig(cmd *cobra.Command, args []string, opts *SumOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.ConfigFile != "" {
		loaded, err := config.Read(commandContext(cmd), opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg.ApplyEnvironmentOverrides()
	}

	if len(args) > 0 {
		cfg.Sources = args
	}
	if len(cfg.Sources) == 0 {
		return nil, errors.New("no sources: pass locations or --config")
	}

	flags := cmd.Flags()
	if flags.Changed("output") || opts.ConfigFile == "" {
		cfg.Output.Format = config.OutputFormat(opts.Output)
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.Encoding
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = opts.Timeout
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = opts.Concurrency
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing = opts.KeepGoing
	}
	if flags.Changed("write") {
		cfg.Output.File = opts.WriteFile
	}
	if flags.Changed("append") {
		cfg.Output.Append = opts.Append
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}
