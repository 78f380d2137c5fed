// Package rednoise tests spectral peaks against a first-order
// autoregressive null model, following Torrence & Compo 1998 (Eq. 17),
// Zhang & Moore 2011 and Percival & Walden 1993.
package rednoise

import (
	"math"

	"goperiod/domain/series"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const confidenceLevel = 0.95

// Significant reports whether the observed spectral power at the candidate
// fundamental bin exceeds the 95th-percentile AR(1) red-noise spectrum.
//
// The sequence is linearly detrended and demeaned before the lag-1
// autocorrelation coefficient is estimated; the order of those steps is
// part of the contract since swapping them changes the numbers. A negative
// coefficient means a blue-noise regime, which is treated as significant
// without further testing.
func Significant(corr series.Correlation, power []float64, idx int) bool {
	n := len(corr)

	phi := lag1Autocorrelation(corr)
	if phi < 0 {
		return true
	}

	// Theoretical AR(1) spectral density at every bin, normalized by its
	// own sum; by Parseval's theorem this matches normalizing the observed
	// power by the de-meaned variance.
	rspec := make([]float64, len(power))
	rsum := 0.0
	for k := range rspec {
		rspec[k] = (1 - phi*phi) / (1 - 2*phi*math.Cos(2*math.Pi*float64(k)/float64(n)) + phi*phi)
		rsum += rspec[k]
	}
	for k := range rspec {
		rspec[k] /= rsum
	}

	psum := 0.0
	for _, p := range power {
		psum += p
	}
	observed := power[idx] / psum
	if math.IsNaN(observed) || math.IsInf(observed, 0) {
		observed = 0
	}

	chi2 := distuv.ChiSquared{K: 2}.Quantile(confidenceLevel)
	threshold := chi2 * rspec[idx]
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		threshold = 0
	}
	return observed >= threshold
}

// lag1Autocorrelation estimates the AR(1) coefficient of the detrended,
// demeaned sequence. The denominator uses the population variance of the
// raw sequence's first N-1 entries, matching the reference formulation.
func lag1Autocorrelation(corr series.Correlation) float64 {
	n := len(corr)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, corr, nil, false)

	detrended := make([]float64, n)
	for i, v := range corr {
		detrended[i] = v - (alpha + beta*float64(i))
	}
	mean := stat.Mean(detrended, nil)

	num := 0.0
	for i := 0; i < n-1; i++ {
		num += (detrended[i] - mean) * (detrended[i+1] - mean)
	}

	variance, err := stats.PopulationVariance(stats.Float64Data(corr[:n-1]))
	if err != nil {
		return 0
	}
	return num / (float64(n-1) * variance)
}
