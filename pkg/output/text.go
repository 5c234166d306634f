package output

import (
	"context"
	"fmt"
	"io"
	"time"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "tally: %d sources, %d failed, grand total %d\n",
		report.Summary.Sources,
		report.Summary.Failed,
		report.Summary.GrandTotal)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.println("=== Tally Report ===")
	ew.println()

	for _, src := range report.Sources {
		f.formatSource(src, ew)
	}

	ew.println("---")
	ew.printf("Summary: %d sources, %d failed, grand total %d\n",
		report.Summary.Sources,
		report.Summary.Failed,
		report.Summary.GrandTotal)

	if f.opts.Verbose {
		ew.printf("Run: %s\n", report.Metadata.RunID)
		ew.printf("Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return ew.err
}

func (f *TextFormatter) formatSource(src SourceReport, ew *errWriter) {
	ew.println(src.Location)

	if src.Total == nil {
		ew.printf("  FAILED: %s\n", src.Error)
		ew.println()
		return
	}

	ew.printf("  Total: %d\n", *src.Total)
	if f.opts.Verbose {
		ew.printf("  Header: %s\n", src.Header)
		ew.printf("  Comment lines: %d\n", src.CommentLines)
		ew.printf("  Data lines: %d\n", src.DataLines)
		ew.printf("  Took: %s\n", src.Duration.Round(time.Microsecond))
	}
	ew.println()
}

// errWriter remembers the first write error so formatting code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, args...)
}
