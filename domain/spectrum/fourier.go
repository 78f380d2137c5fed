package spectrum

import (
	"goperiod/domain/series"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum holds the one-sided real-input Fourier transform of a
// correlation sequence of length N: ⌊N/2⌋+1 complex coefficients and the
// derived power sequence, where every non-DC bin is doubled to fold in its
// negative-frequency mirror.
type Spectrum struct {
	Coeffs []complex128
	Power  []float64
	N      int
}

// Decompose computes the one-sided FFT and folded power spectrum of a
// correlation sequence. No significance judgment happens here.
func Decompose(c series.Correlation) Spectrum {
	n := len(c)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, c)

	power := make([]float64, len(coeffs))
	for i, cf := range coeffs {
		p := real(cf)*real(cf) + imag(cf)*imag(cf)
		if i > 0 {
			p *= 2
		}
		power[i] = p
	}
	return Spectrum{Coeffs: coeffs, Power: power, N: n}
}

// Reconstruct inverse-transforms a sparse coefficient array back to a
// time-domain sequence of length n. Coefficients must have one-sided
// length ⌊n/2⌋+1.
func Reconstruct(coeffs []complex128, n int) []float64 {
	fft := fourier.NewFFT(n)
	seq := fft.Sequence(nil, coeffs)
	// gonum's round trip scales by the sequence length.
	for i := range seq {
		seq[i] /= float64(n)
	}
	return seq
}
