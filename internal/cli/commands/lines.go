package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/tally/pkg/config"
	"github.com/ccollicutt/tally/pkg/output"
	"github.com/ccollicutt/tally/pkg/parser"
)

// LinesOptions holds command-line options for the lines command.
type LinesOptions struct {
	All      bool
	Numbered bool
	Encoding string
	Timeout  time.Duration
}

// NewLinesCommand creates the lines command.
func NewLinesCommand() *cobra.Command {
	opts := &LinesOptions{}

	cmd := &cobra.Command{
		Use:   "lines <location>",
		Short: "Print the data lines of a source",
		Long: `Print the data lines of a source with trailing whitespace removed,
so right-aligned numbers stay aligned.

With --all the header and comment lines are printed too, labelled by kind.

Example:
  tally lines data/hopedale.txt
  tally lines --all -n https://robjhyndman.com/tsdldata/ecology1/hopedale.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLines(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "Also print header and comment lines")
	cmd.Flags().BoolVarP(&opts.Numbered, "numbered", "n", false, "Prefix lines with their line number")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "Charset of the source (e.g. latin1)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", config.DefaultHTTPTimeout, "Timeout for URL sources")

	return cmd
}

func runLines(cmd *cobra.Command, args []string, opts *LinesOptions) error {
	ctx := commandContext(cmd)
	setupLogging(cmd, config.LogConfig{})

	src, err := parser.Open(ctx, args[0],
		parser.WithEncoding(opts.Encoding),
		parser.WithTimeout(opts.Timeout),
		parser.WithStdin(cmd.InOrStdin()),
	)
	if err != nil {
		return err
	}
	defer src.Close()

	return output.WriteLines(cmd.OutOrStdout(), src, output.LinesOptions{
		All:      opts.All,
		Numbered: opts.Numbered,
	})
}
