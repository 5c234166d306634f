package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/tally/pkg/parser"
)

// LinesOptions controls WriteLines.
type LinesOptions struct {
	// All also prints the header and comment lines, prefixed with their kind.
	All bool

	// Numbered prefixes each line with its line number.
	Numbered bool
}

// WriteLines prints the data lines of src with only trailing whitespace
// removed, so right-aligned columns stay aligned. Lines are written as they
// are read; a malformed line stops the listing with an error after the lines
// before it have been printed.
func WriteLines(w io.Writer, src parser.LineSource, opts LinesOptions) error {
	return parser.Walk(src, func(l parser.Line) error {
		if l.Kind != parser.KindData && !opts.All {
			return nil
		}

		var b strings.Builder
		if opts.Numbered {
			fmt.Fprintf(&b, "%4d  ", l.Num)
		}
		if opts.All {
			fmt.Fprintf(&b, "%-8s", l.Kind.String())
		}
		b.WriteString(strings.TrimRight(l.Text, " \t"))

		_, err := fmt.Fprintln(w, b.String())
		return err
	})
}
