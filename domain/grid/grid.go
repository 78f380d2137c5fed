// Package grid applies the dominant-period decision to every cell of a
// rectangular field of windows. Cells are fully independent: a cell's
// result never depends on its neighbors, so row-major batching and
// parallel execution are interchangeable.
package grid

import (
	"context"
	"runtime"

	"goperiod/domain/core"
	"goperiod/domain/period"
	"goperiod/domain/series"

	"golang.org/x/sync/errgroup"
)

// Batch is a row-major rectangular field of windows, one per grid cell.
type Batch [][]series.Window

// Results mirrors the shape of the input batch.
type Results [][]period.Result

// Options tunes batch execution.
type Options struct {
	// Workers caps concurrent cells; zero means GOMAXPROCS.
	Workers int
	// DetrendSlope removes the linear slope from each cell's correlation
	// before the decision.
	DetrendSlope bool
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Analyze cross-correlates a against b cell-wise and runs the decision on
// each correlation. Both batches must be non-empty, rectangular and of the
// same shape. The first failing cell cancels the rest; partial results are
// discarded.
func Analyze(ctx context.Context, a, b Batch, p period.Params, opts Options) (Results, error) {
	if err := validateShape(a, b); err != nil {
		return nil, err
	}

	out := make(Results, len(a))
	for i := range out {
		out[i] = make([]period.Result, len(a[i]))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i := range a {
		for j := range a[i] {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := analyzeCell(a[i][j], b[i][j], p, opts)
				if err != nil {
					return err
				}
				out[i][j] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeAuto runs the decision on each cell's autocorrelation.
func AnalyzeAuto(ctx context.Context, b Batch, p period.Params, opts Options) (Results, error) {
	return Analyze(ctx, b, b, p, opts)
}

func analyzeCell(a, b series.Window, p period.Params, opts Options) (period.Result, error) {
	corr, err := series.LagCorrelation(a, b)
	if err != nil {
		return period.Result{}, err
	}
	if opts.DetrendSlope {
		corr = series.DetrendSlope(corr)
	}
	return period.Detect(corr, p)
}

func validateShape(a, b Batch) error {
	if len(a) == 0 || len(a[0]) == 0 {
		return core.ErrEmptyGrid
	}
	if len(b) != len(a) {
		return core.ErrRaggedGrid
	}
	cols := len(a[0])
	for i := range a {
		if len(a[i]) != cols || len(b[i]) != cols {
			return core.ErrRaggedGrid
		}
	}
	return nil
}
