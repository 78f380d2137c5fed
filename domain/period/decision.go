package period

import (
	"math"
	"math/cmplx"

	"goperiod/domain/core"
	"goperiod/domain/rednoise"
	"goperiod/domain/series"
	"goperiod/domain/spectrum"

	"gonum.org/v1/gonum/stat"
)

// Summed coefficient magnitude outside the DC bin below this is treated as
// a constant sequence.
const constantEnergyEps = 1e-10

// Detect runs the full dominant-return-period decision on one correlation
// sequence: Fourier decomposition, magnitude ranking, harmonic group
// selection, red-noise significance and the adjusted-R² fit gate.
//
// Every path returns a populated Result; only precondition violations
// (length below 2, non-finite input) are errors.
func Detect(corr series.Correlation, p Params) (Result, error) {
	n := len(corr)
	if n < 2 {
		return Result{}, core.NewWindowTooShortError(n)
	}
	for i, v := range corr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, core.NewNonFiniteError(i)
		}
	}

	spec := spectrum.Decompose(corr)
	ranking := spectrum.Rank(spec.Coeffs)

	res := Result{
		Coeffs:  spec.Coeffs,
		Ranking: ranking,
	}

	// A sequence that never leaves the tolerance band carries no usable
	// signal. The identity fit with r²=1 keeps downstream aggregation
	// uniform without inventing a period.
	if corr.MaxAbs() < p.CorrTolerance {
		res.Outcome = OutcomeNoSignal
		res.RSquared = 1.0
		res.Fit = append([]float64(nil), corr...)
		return res, nil
	}

	nonDC := 0.0
	for _, cf := range spec.Coeffs[1:] {
		nonDC += cmplx.Abs(cf)
	}
	if nonDC < constantEnergyEps {
		res.Outcome = OutcomeConstant
		res.RSquared = 1.0
		res.Fit = append([]float64(nil), corr...)
		return res, nil
	}

	group, ok := spectrum.SelectGroup(ranking)
	res.Harmonics = group.Indices
	res.Fundamental = group.Fundamental
	if !ok {
		res.Outcome = OutcomeFundamentalLost
		res.Fit = make([]float64, n)
		return res, nil
	}

	f0 := group.FirstNonZero()
	if !rednoise.Significant(corr, spec.Power, f0) {
		res.Outcome = OutcomeNotSignificant
		res.Fit = make([]float64, n)
		return res, nil
	}

	sparse := make([]complex128, len(spec.Coeffs))
	for _, idx := range group.Indices {
		sparse[idx] = spec.Coeffs[idx]
	}
	fit := spectrum.Reconstruct(sparse, n)
	res.Fit = fit

	r2 := stat.RSquaredFrom(fit, corr, nil)
	adjusted := 1 - (1-r2)*float64(n-1)/float64(n-len(group.Indices)-1)
	res.RSquared = adjusted

	if adjusted >= p.R2Threshold {
		res.Outcome = OutcomePeriodic
		res.Period = math.Round(float64(n)/float64(f0)*100) / 100
		return res, nil
	}

	res.Outcome = OutcomePoorFit
	return res, nil
}
