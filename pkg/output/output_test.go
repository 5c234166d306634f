package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/tally/pkg/parser"
	"github.com/ccollicutt/tally/pkg/tally"
)

func newTestRun() *tally.Run {
	start := time.Date(2026, 2, 22, 9, 0, 0, 0, time.UTC)
	return &tally.Run{
		ID:        "run-1",
		StartTime: start,
		EndTime:   start.Add(2 * time.Second),
		Sources: []*tally.SourceResult{
			{
				Location: "hopedale.txt",
				Result: &parser.Result{
					Total:        373,
					Header:       "Coloured fox fur production, HOPEDALE",
					CommentLines: 2,
					DataLines:    9,
				},
				Duration: time.Millisecond,
			},
			{
				Location: "broken.txt",
				Err:      errors.New("line 3: \"x\" is not an integer"),
			},
		},
	}
}

func newTestReport(t *testing.T) *Report {
	t.Helper()
	report, err := NewReport(newTestRun())
	if err != nil {
		t.Fatalf("NewReport() error = %v", err)
	}
	return report
}

func TestNewReport(t *testing.T) {
	report := newTestReport(t)

	if report.Summary.Sources != 2 || report.Summary.Succeeded != 1 || report.Summary.Failed != 1 {
		t.Errorf("Summary = %+v", report.Summary)
	}
	if report.Summary.GrandTotal != 373 {
		t.Errorf("GrandTotal = %d, want 373", report.Summary.GrandTotal)
	}
	if !report.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if report.Metadata.RunID != "run-1" || report.Metadata.Duration != 2*time.Second {
		t.Errorf("Metadata = %+v", report.Metadata)
	}
	if report.Sources[0].Total == nil || *report.Sources[0].Total != 373 {
		t.Errorf("Sources[0].Total = %v", report.Sources[0].Total)
	}
	if report.Sources[1].Total != nil || report.Sources[1].Error == "" {
		t.Errorf("Sources[1] = %+v", report.Sources[1])
	}
}

func TestTextFormatter_Full(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), newTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"=== Tally Report ===",
		"hopedale.txt\n  Total: 373",
		"broken.txt\n  FAILED: line 3",
		"Summary: 2 sources, 1 failed, grand total 373",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Header:") {
		t.Error("non-verbose output should not include header text")
	}
}

func TestTextFormatter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Verbose: true})
	if err := f.Format(context.Background(), newTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Header: Coloured fox", "Comment lines: 2", "Data lines: 9", "Run: run-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), newTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "tally: 2 sources, 1 failed, grand total 373\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})
	if err := f.Format(context.Background(), newTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Summary.GrandTotal != 373 || len(decoded.Sources) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"grand_total": 373`) {
		t.Errorf("missing grand_total field:\n%s", buf.String())
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), newTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.GrandTotal != 373 || summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if strings.Contains(buf.String(), "sources\": [") {
		t.Error("quiet JSON should not include per-source results")
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"", "text", "json"} {
		if _, err := NewFormatter(name, FormatOptions{}); err != nil {
			t.Errorf("NewFormatter(%q) error = %v", name, err)
		}
	}
	if _, err := NewFormatter("xml", FormatOptions{}); err == nil {
		t.Error("NewFormatter(\"xml\") expected error")
	}
}

func TestWriteFile_OverwriteAndAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totals.txt")
	f := NewTextFormatter(FormatOptions{Quiet: true})
	report := newTestReport(t)
	ctx := context.Background()
	line := "tally: 2 sources, 1 failed, grand total 373\n"

	if err := os.WriteFile(path, []byte("stale content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(ctx, path, false, f, report); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != line {
		t.Errorf("after overwrite = %q, want %q", got, line)
	}

	if err := WriteFile(ctx, path, true, f, report); err != nil {
		t.Fatalf("WriteFile(append) error = %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != line+line {
		t.Errorf("after append = %q, want %q", got, line+line)
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "totals.txt")
	err := WriteFile(context.Background(), path, false, NewTextFormatter(FormatOptions{}), newTestReport(t))
	if err == nil {
		t.Error("WriteFile() expected error for missing directory")
	}
}

func TestWriteLines(t *testing.T) {
	lines := []string{"Pelts", "#Source", "      22   ", "       2   "}

	var buf bytes.Buffer
	if err := WriteLines(&buf, parser.NewSliceSource(lines), LinesOptions{}); err != nil {
		t.Fatalf("WriteLines() error = %v", err)
	}
	want := "      22\n       2\n"
	if buf.String() != want {
		t.Errorf("WriteLines() = %q, want %q", buf.String(), want)
	}
}

func TestWriteLines_All(t *testing.T) {
	lines := []string{"Pelts", "#Source", "  22 "}

	var buf bytes.Buffer
	if err := WriteLines(&buf, parser.NewSliceSource(lines), LinesOptions{All: true, Numbered: true}); err != nil {
		t.Fatalf("WriteLines() error = %v", err)
	}
	want := "   1  header  Pelts\n   2  comment #Source\n   3  data      22\n"
	if buf.String() != want {
		t.Errorf("WriteLines() = %q, want %q", buf.String(), want)
	}
}

func TestWriteLines_StopsAtMalformed(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLines(&buf, parser.NewSliceSource([]string{"h", "1", "x", "2"}), LinesOptions{})
	if !errors.Is(err, parser.ErrMalformedData) {
		t.Fatalf("WriteLines() error = %v, want ErrMalformedData", err)
	}
	if buf.String() != "1\n" {
		t.Errorf("WriteLines() printed %q before failing, want %q", buf.String(), "1\n")
	}
}

func TestTextFormatter_VerboseRoundsDurations(t *testing.T) {
	report := newTestReport(t)
	report.Metadata.Duration = 2*time.Second + 345678*time.Nanosecond
	report.Sources[0].Duration = 1234567 * time.Nanosecond

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Verbose: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Duration: 2s\n", "Took: 1.235ms\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}
