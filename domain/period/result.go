package period

import (
	"goperiod/domain/core"
)

// Outcome is the closed taxonomy of analysis results. Only the first is a
// positive finding; the rest are valid, expected negatives and must never
// be conflated with each other or with errors.
type Outcome string

const (
	// OutcomePeriodic: a significant dominant return period was found.
	OutcomePeriodic Outcome = "periodic"
	// OutcomeNoSignal: the correlation magnitude never exceeds the
	// tolerance; r² is 1.0 and the fit equals the input.
	OutcomeNoSignal Outcome = "no_signal"
	// OutcomeConstant: Fourier energy outside DC is negligible. This is a
	// reserved marker, deliberately not a numeric period.
	OutcomeConstant Outcome = "constant"
	// OutcomeFundamentalLost: the GCD-derived fundamental did not survive
	// harmonic-set filtering; the whole decision is void.
	OutcomeFundamentalLost Outcome = "fundamental_lost"
	// OutcomeNotSignificant: the red-noise chi-squared test failed at the
	// candidate bin.
	OutcomeNotSignificant Outcome = "not_significant"
	// OutcomePoorFit: adjusted R² fell below the acceptance threshold.
	OutcomePoorFit Outcome = "poor_fit"
)

// Params is the explicit configuration passed into the pipeline entry
// points. There is no process-wide mutable state.
type Params struct {
	WindowHalfLen int     // N: correlation sequence length
	CorrTolerance float64 // ε: minimal correlation magnitude to account for
	R2Threshold   float64 // adjusted-R² acceptance threshold
}

// DefaultParams mirrors the reference configuration for yearly series.
func DefaultParams() Params {
	return Params{
		WindowHalfLen: 25,
		CorrTolerance: 1e-4,
		R2Threshold:   0.5,
	}
}

// Result is the decision object for one correlation instance. All spectral
// bookkeeping is populated regardless of outcome so callers can audit a
// negative decision.
type Result struct {
	Outcome     Outcome
	RSquared    float64
	Fit         []float64
	Period      float64 // dominant return period; valid only when Outcome is OutcomePeriodic
	Coeffs      []complex128
	Ranking     []int
	Harmonics   []int // surviving harmonic set, ranking-encounter order
	Fundamental int   // GCD-derived candidate; 0 when never computed
}

// HasPeriod reports whether a numeric dominant period was found.
func (r Result) HasPeriod() bool {
	return r.Outcome == OutcomePeriodic
}

// Record is a persisted decision for one (event, reference-time) pair,
// owned by the caller that requested it and immutable after construction.
type Record struct {
	ID            core.DecisionID
	Event         core.EventKey
	ReferenceTime core.ReferenceTime
	Detrended     bool
	Result        Result
	CreatedAt     core.Timestamp
}

// NewRecord builds a Record with a fresh time-ordered id.
func NewRecord(event core.EventKey, t0 core.ReferenceTime, detrended bool, res Result) Record {
	return Record{
		ID:            core.DecisionID(core.NewID()),
		Event:         event,
		ReferenceTime: t0,
		Detrended:     detrended,
		Result:        res,
		CreatedAt:     core.Now(),
	}
}
