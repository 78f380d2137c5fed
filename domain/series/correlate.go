package series

import (
	"goperiod/domain/core"

	"gonum.org/v1/gonum/stat"
)

// LagCorrelation computes the time correlation between two equal-length
// 2N-sample windows. Entry k is the dot product of the first N samples of
// a with the N-sample slice of b starting at offset k, divided by N.
//
// If the first N samples of a are uniformly zero, or all of b is, the
// result is the all-zero sequence without any products being computed.
// Downstream stages treat all-zero exactly as "no signal", so the
// short-circuit is part of the contract, not just an optimization.
func LagCorrelation(a, b Window) (Correlation, error) {
	if len(a) != len(b) {
		return nil, core.NewLengthMismatchError(len(b), len(a))
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	n := a.HalfLen()
	out := make(Correlation, n)
	if allZero(a[:n]) || allZero(b) {
		return out, nil
	}
	for k := 0; k < n; k++ {
		sum := 0.0
		for t := 0; t < n; t++ {
			sum += a[t] * b[k+t]
		}
		out[k] = sum / float64(n)
	}
	return out, nil
}

// AutoCorrelation is LagCorrelation of a window with itself.
func AutoCorrelation(w Window) (Correlation, error) {
	return LagCorrelation(w, w)
}

// DetrendSlope removes the fitted OLS slope contribution from the
// sequence, keeping the intercept. Used for the detrended variant of the
// analysis, where a secular trend would otherwise masquerade as a
// low-frequency harmonic.
func DetrendSlope(c Correlation) Correlation {
	xs := make([]float64, len(c))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, c, nil, false)
	out := make(Correlation, len(c))
	for i, v := range c {
		out[i] = v - beta*float64(i)
	}
	return out
}
