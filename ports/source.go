package ports

import (
	"context"

	"goperiod/domain/core"
	"goperiod/domain/series"
)

// SeriesSource provides read-only access to indicator time series. The
// analysis layer never touches files or databases directly.
type SeriesSource interface {
	// Indicators returns every indicator series the source holds, one per
	// extreme-event column.
	Indicators(ctx context.Context) ([]series.Indicator, error)
}

// GridSource provides per-cell indicator fields for spatial runs.
type GridSource interface {
	// Grid returns a rectangular row-major field of windows anchored at
	// the given reference time.
	Grid(ctx context.Context, t0 core.ReferenceTime, halfLen int) ([][]series.Window, error)
}
