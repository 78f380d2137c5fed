// Package testkit generates deterministic synthetic indicator data for
// tests. Every generator takes an explicit seed so failures reproduce.
package testkit

import (
	"math"
	"math/rand"

	"goperiod/domain/series"
)

// CosineWindow returns a window of length 2n holding a pure cosine with the
// given period in samples. Its autocorrelation is again a cosine with the
// same period, which makes the expected dominant bin exactly n/period.
func CosineWindow(n int, period float64) series.Window {
	w := make(series.Window, 2*n)
	for t := range w {
		w[t] = math.Cos(2 * math.Pi * float64(t) / period)
	}
	return w
}

// CosineCorrelation returns a correlation sequence of length n holding a
// pure cosine with the given period, bypassing the correlation step.
func CosineCorrelation(n int, period float64) series.Correlation {
	c := make(series.Correlation, n)
	for k := range c {
		c[k] = math.Cos(2 * math.Pi * float64(k) / period)
	}
	return c
}

// WhiteNoise returns a window of length 2n of standard normal draws.
func WhiteNoise(n int, seed int64) series.Window {
	rng := rand.New(rand.NewSource(seed))
	w := make(series.Window, 2*n)
	for t := range w {
		w[t] = rng.NormFloat64()
	}
	return w
}

// WhiteNoiseCorrelation returns a correlation-shaped sequence of length n
// of standard normal draws.
func WhiteNoiseCorrelation(n int, seed int64) series.Correlation {
	rng := rand.New(rand.NewSource(seed))
	c := make(series.Correlation, n)
	for k := range c {
		c[k] = rng.NormFloat64()
	}
	return c
}

// AR1Correlation returns a correlation-shaped sequence of length n from a
// first-order autoregressive process with coefficient phi.
func AR1Correlation(n int, phi float64, seed int64) series.Correlation {
	rng := rand.New(rand.NewSource(seed))
	c := make(series.Correlation, n)
	prev := rng.NormFloat64()
	for k := range c {
		prev = phi*prev + rng.NormFloat64()
		c[k] = prev
	}
	return c
}

// SparseEvents returns a window of length 2n that is zero except for ones
// every stride samples, mimicking a binary extreme-event indicator.
func SparseEvents(n, stride int) series.Window {
	w := make(series.Window, 2*n)
	for t := 0; t < len(w); t += stride {
		w[t] = 1
	}
	return w
}
