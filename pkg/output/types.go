// Package output provides formatting and output generation for tally runs.
package output

import (
	"time"

	"github.com/ccollicutt/tally/pkg/tally"
)

// Report is the complete run output.
type Report struct {
	// Summary provides aggregate figures.
	Summary Summary `json:"summary"`

	// Sources holds one entry per location, in input order.
	Sources []SourceReport `json:"sources"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate figures.
type Summary struct {
	Sources    int   `json:"sources"`
	Succeeded  int   `json:"succeeded"`
	Failed     int   `json:"failed"`
	GrandTotal int64 `json:"grand_total"`
}

// SourceReport is the outcome for a single location.
type SourceReport struct {
	Location     string        `json:"location"`
	Total        *int64        `json:"total,omitempty"`
	Header       string        `json:"header,omitempty"`
	CommentLines int           `json:"comment_lines"`
	DataLines    int           `json:"data_lines"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
}

// Metadata provides context about the run.
type Metadata struct {
	RunID      string        `json:"run_id"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
	Duration   time.Duration `json:"duration_ns"`
}

// NewReport creates a Report from a run. The grand total covers the
// sources that succeeded.
func NewReport(run *tally.Run) (*Report, error) {
	grand, err := run.GrandTotal()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Sources: make([]SourceReport, 0, len(run.Sources)),
		Metadata: Metadata{
			RunID:      run.ID,
			AnalyzedAt: run.EndTime,
			Duration:   run.EndTime.Sub(run.StartTime),
		},
		Summary: Summary{
			Sources:    len(run.Sources),
			Failed:     run.Failed(),
			GrandTotal: grand,
		},
	}
	report.Summary.Succeeded = report.Summary.Sources - report.Summary.Failed

	for _, s := range run.Sources {
		sr := SourceReport{
			Location: s.Location,
			Duration: s.Duration,
		}
		if s.OK() {
			total := s.Result.Total
			sr.Total = &total
			sr.Header = s.Result.Header
			sr.CommentLines = s.Result.CommentLines
			sr.DataLines = s.Result.DataLines
		} else if s.Err != nil {
			sr.Error = s.Err.Error()
		}
		report.Sources = append(report.Sources, sr)
	}

	return report, nil
}

// HasFailures returns true if any source could not be totalled.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0
}
