// Package tally totals many line sources at once.
package tally

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/tally/internal/logging"
	"github.com/ccollicutt/tally/pkg/parser"
)

// DefaultConcurrency is the number of sources summed at once when unset.
const DefaultConcurrency = 4

// Options controls a run.
type Options struct {
	// Concurrency bounds how many sources are open at once.
	Concurrency int

	// KeepGoing attempts every source and records failures instead of
	// cancelling the run at the first one.
	KeepGoing bool

	// Open options passed to parser.Open for every source.
	Open []parser.Option
}

// SourceResult is the outcome for one location.
type SourceResult struct {
	Location string
	Result   *parser.Result
	Err      error
	Duration time.Duration
}

// OK reports whether the source was totalled.
func (r *SourceResult) OK() bool {
	return r.Err == nil && r.Result != nil
}

// Run is the outcome of totalling a set of locations.
type Run struct {
	ID        string
	Sources   []*SourceResult
	StartTime time.Time
	EndTime   time.Time
}

// Failed returns the number of sources that could not be totalled.
func (r *Run) Failed() int {
	n := 0
	for _, s := range r.Sources {
		if !s.OK() {
			n++
		}
	}
	return n
}

// GrandTotal sums the totals of every successful source.
func (r *Run) GrandTotal() (int64, error) {
	var total int64
	for _, s := range r.Sources {
		if !s.OK() {
			continue
		}
		next := total + s.Result.Total
		if (s.Result.Total > 0 && next < total) || (s.Result.Total < 0 && next > total) {
			return 0, parser.ErrSumOverflow
		}
		total = next
	}
	return total, nil
}

// Sum opens each location, totals it with parser.Sum and closes it again.
// Results keep the order of locations. Without KeepGoing the first failure
// cancels the remaining sources and is returned along with the partial run.
func Sum(ctx context.Context, locations []string, opts Options) (*Run, error) {
	log := logging.Named("tally")

	run := &Run{
		ID:        uuid.NewString(),
		Sources:   make([]*SourceResult, len(locations)),
		StartTime: time.Now(),
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, loc := range locations {
		loc := loc
		run.Sources[i] = &SourceResult{Location: loc}
		sr := run.Sources[i]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				sr.Err = err
				return nil
			}

			start := time.Now()
			sr.Result, sr.Err = sumLocation(gctx, loc, opts.Open)
			sr.Duration = time.Since(start)

			if sr.Err != nil {
				log.Warn().Err(sr.Err).Str("source", loc).Msg("source failed")
				if !opts.KeepGoing {
					return fmt.Errorf("%s: %w", loc, sr.Err)
				}
				return nil
			}

			log.Debug().
				Str("source", loc).
				Int64("total", sr.Result.Total).
				Int("data_lines", sr.Result.DataLines).
				Dur("took", sr.Duration).
				Msg("source summed")
			return nil
		})
	}

	err := g.Wait()
	run.EndTime = time.Now()
	return run, err
}

func sumLocation(ctx context.Context, loc string, opts []parser.Option) (*parser.Result, error) {
	src, err := parser.Open(ctx, loc, opts...)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return parser.Sum(src)
}
