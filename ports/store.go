package ports

import (
	"context"

	"goperiod/domain/core"
	"goperiod/domain/period"
)

// CountRecord summarizes event activity inside one analysis window:
// how many of the window's years carry a non-zero indicator value and the
// resulting occurrence probability.
type CountRecord struct {
	Event         core.EventKey
	ReferenceTime core.ReferenceTime
	Count         int
	WindowLen     int
	Probability   float64
}

// ResultStore persists period decisions and window counts. Implementations
// must treat records as immutable; saving the same decision id twice is an
// upsert, never a merge.
type ResultStore interface {
	SaveRecord(ctx context.Context, rec period.Record) error
	SaveCounts(ctx context.Context, counts []CountRecord) error
}
