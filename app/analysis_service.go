package app

import (
	"context"
	"errors"
	"fmt"

	"goperiod/domain/core"
	"goperiod/domain/period"
	"goperiod/domain/series"
	"goperiod/internal"
	"goperiod/ports"

	"github.com/montanaflynn/stats"
)

// AnalysisService drives the full detection run: slice windows at every
// configured reference time, autocorrelate, decide, persist.
type AnalysisService struct {
	source   ports.SeriesSource
	store    ports.ResultStore
	log      *internal.Logger
	params   period.Params
	refTimes []core.ReferenceTime
}

// RunSummary aggregates one full analysis run for reporting.
type RunSummary struct {
	Indicators  int
	Windows     int
	Periodic    int
	MeanPeriod  float64
	MeanAdjR2   float64
	SkippedGaps int
}

// NewAnalysisService wires the source and store into a run driver.
func NewAnalysisService(source ports.SeriesSource, store ports.ResultStore, log *internal.Logger, params period.Params, refTimes []core.ReferenceTime) *AnalysisService {
	return &AnalysisService{
		source:   source,
		store:    store,
		log:      log,
		params:   params,
		refTimes: refTimes,
	}
}

// Run analyzes every indicator at every reference time. Windows that fall
// outside an indicator's coverage are skipped and counted, not fatal. A
// precondition violation inside a covered window aborts the run.
func (s *AnalysisService) Run(ctx context.Context, detrend bool) (*RunSummary, error) {
	indicators, err := s.source.Indicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load indicators: %w", err)
	}
	if len(indicators) == 0 {
		return nil, core.ErrEventNotFound
	}

	summary := &RunSummary{Indicators: len(indicators)}
	var periods, adjR2s []float64
	var counts []ports.CountRecord

	for _, ind := range indicators {
		times := s.refTimes
		if len(times) == 0 {
			// Without explicit reference times each indicator contributes
			// a single window anchored at its own start year.
			times = []core.ReferenceTime{core.ReferenceTime(ind.Start)}
		}
		for _, t0 := range times {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			w, err := ind.Window(t0, s.params.WindowHalfLen)
			if err != nil {
				if errors.Is(err, core.ErrWindowNotFound) {
					summary.SkippedGaps++
					s.log.Debug("skipping %s at t0=%d: window not covered", ind.Event, int(t0))
					continue
				}
				return nil, err
			}

			count := series.CountNonZero(w)
			counts = append(counts, ports.CountRecord{
				Event:         ind.Event,
				ReferenceTime: t0,
				Count:         count,
				WindowLen:     len(w),
				Probability:   float64(count) / float64(len(w)),
			})

			corr, err := series.AutoCorrelation(w)
			if err != nil {
				return nil, fmt.Errorf("correlation failed for %s at t0=%d: %w", ind.Event, int(t0), err)
			}
			if detrend {
				corr = series.DetrendSlope(corr)
			}

			res, err := period.Detect(corr, s.params)
			if err != nil {
				return nil, fmt.Errorf("detection failed for %s at t0=%d: %w", ind.Event, int(t0), err)
			}

			summary.Windows++
			if res.HasPeriod() {
				summary.Periodic++
				periods = append(periods, res.Period)
				adjR2s = append(adjR2s, res.RSquared)
				s.log.Info("%s t0=%d: dominant return period %.2f (adj r2 %.3f)",
					ind.Event, int(t0), res.Period, res.RSquared)
			} else {
				s.log.Debug("%s t0=%d: %s", ind.Event, int(t0), res.Outcome)
			}

			rec := period.NewRecord(ind.Event, t0, detrend, res)
			if err := s.store.SaveRecord(ctx, rec); err != nil {
				return nil, fmt.Errorf("failed to save decision: %w", err)
			}
		}
	}

	if len(counts) > 0 {
		if err := s.store.SaveCounts(ctx, counts); err != nil {
			return nil, fmt.Errorf("failed to save counts: %w", err)
		}
	}

	if len(periods) > 0 {
		summary.MeanPeriod, _ = stats.Mean(stats.Float64Data(periods))
		summary.MeanAdjR2, _ = stats.Mean(stats.Float64Data(adjR2s))
	}

	s.log.Info("run complete: %d indicators, %d windows, %d periodic, %d skipped",
		summary.Indicators, summary.Windows, summary.Periodic, summary.SkippedGaps)
	return summary, nil
}
