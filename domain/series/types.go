package series

import (
	"math"

	"goperiod/domain/core"
)

// Window is a fixed slice of 2N consecutive samples of an extreme-event
// indicator, already time-sorted with missing values pre-filled (normally
// with zero). Treated as immutable once constructed.
type Window []float64

// HalfLen returns N for a window of length 2N.
func (w Window) HalfLen() int {
	return len(w) / 2
}

// Validate checks the window preconditions: even length of at least 4
// (N > 1) and finite samples throughout.
func (w Window) Validate() error {
	if len(w) < 4 || len(w)%2 != 0 {
		return core.NewWindowTooShortError(len(w))
	}
	return checkFinite(w)
}

// Correlation is a lag-correlation sequence of length N. Index k is the
// lag shift; index 0 is zero shift. An all-zero sequence means "no signal".
type Correlation []float64

// MaxAbs returns the largest absolute value in the sequence.
func (c Correlation) MaxAbs() float64 {
	m := 0.0
	for _, v := range c {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Indicator is a named full-length event series starting at year Start,
// from which observation windows are sliced.
type Indicator struct {
	Event  core.EventKey
	Start  int
	Values []float64
}

// Window slices the 2N-sample window beginning at reference year t0.
func (ind Indicator) Window(t0 core.ReferenceTime, halfLen int) (Window, error) {
	offset := int(t0) - ind.Start
	if offset < 0 || offset+2*halfLen > len(ind.Values) {
		return nil, core.ErrWindowNotFound
	}
	w := make(Window, 2*halfLen)
	copy(w, ind.Values[offset:offset+2*halfLen])
	return w, nil
}

// CountNonZero returns the number of samples in the window where the
// indicator fired (non-zero value).
func CountNonZero(w Window) int {
	n := 0
	for _, v := range w {
		if v != 0 {
			n++
		}
	}
	return n
}

func checkFinite(vals []float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewNonFiniteError(i)
		}
	}
	return nil
}

func allZero(vals []float64) bool {
	for _, v := range vals {
		if v != 0 {
			return false
		}
	}
	return true
}
