package series

import (
	"errors"
	"math"
	"testing"

	"goperiod/domain/core"
)

func cosineWindow(n int, period float64) Window {
	w := make(Window, 2*n)
	for t := range w {
		w[t] = math.Cos(2 * math.Pi * float64(t) / period)
	}
	return w
}

func TestAutoCorrelationCosine(t *testing.T) {
	// The autocorrelation of cos(2πt/p) over full periods is
	// 0.5*cos(2πk/p) exactly.
	const n = 25
	w := cosineWindow(n, 5)

	corr, err := AutoCorrelation(w)
	if err != nil {
		t.Fatalf("AutoCorrelation failed: %v", err)
	}
	if len(corr) != n {
		t.Fatalf("correlation length = %d, want %d", len(corr), n)
	}
	for k := range corr {
		want := 0.5 * math.Cos(2*math.Pi*float64(k)/5)
		if math.Abs(corr[k]-want) > 1e-9 {
			t.Errorf("corr[%d] = %g, want %g", k, corr[k], want)
		}
	}
}

func TestLagCorrelationBruteForce(t *testing.T) {
	a := Window{1, 2, -1, 0.5, 3, -2, 0, 1}
	b := Window{0.5, -1, 2, 1, -0.5, 0, 2, -1}
	n := a.HalfLen()

	corr, err := LagCorrelation(a, b)
	if err != nil {
		t.Fatalf("LagCorrelation failed: %v", err)
	}
	for k := 0; k < n; k++ {
		want := 0.0
		for i := 0; i < n; i++ {
			want += a[i] * b[k+i]
		}
		want /= float64(n)
		if math.Abs(corr[k]-want) > 1e-12 {
			t.Errorf("corr[%d] = %g, want %g", k, corr[k], want)
		}
	}
}

func TestLagCorrelationZeroShortCircuit(t *testing.T) {
	n := 4
	zeros := make(Window, 2*n)
	active := Window{1, 2, 3, 4, 5, 6, 7, 8}

	// First half of a zero: products never computed even though the
	// second half is active.
	halfZero := Window{0, 0, 0, 0, 1, 2, 3, 4}
	corr, err := LagCorrelation(halfZero, active)
	if err != nil {
		t.Fatalf("LagCorrelation failed: %v", err)
	}
	for k, v := range corr {
		if v != 0 {
			t.Errorf("corr[%d] = %g, want 0", k, v)
		}
	}

	corr, err = LagCorrelation(active, zeros)
	if err != nil {
		t.Fatalf("LagCorrelation failed: %v", err)
	}
	for k, v := range corr {
		if v != 0 {
			t.Errorf("corr[%d] = %g, want 0", k, v)
		}
	}
}

func TestLagCorrelationPreconditions(t *testing.T) {
	good := Window{1, 2, 3, 4, 5, 6, 7, 8}

	_, err := LagCorrelation(good, Window{1, 2, 3, 4})
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Errorf("length mismatch: got %v", err)
	}

	_, err = LagCorrelation(Window{1, 2}, Window{1, 2})
	if !errors.Is(err, core.ErrWindowTooShort) {
		t.Errorf("too short: got %v", err)
	}

	odd := Window{1, 2, 3, 4, 5}
	_, err = LagCorrelation(odd, odd)
	if !errors.Is(err, core.ErrWindowTooShort) {
		t.Errorf("odd length: got %v", err)
	}

	withNaN := Window{1, 2, math.NaN(), 4, 5, 6, 7, 8}
	_, err = LagCorrelation(withNaN, good)
	if !errors.Is(err, core.ErrNonFinite) {
		t.Errorf("NaN input: got %v", err)
	}
	if !core.IsPreconditionError(err) {
		t.Errorf("expected precondition error, got %v", err)
	}
}

func TestDetrendSlopeRemovesLinearTrend(t *testing.T) {
	c := make(Correlation, 20)
	for i := range c {
		c[i] = 3 + 2*float64(i)
	}
	out := DetrendSlope(c)
	for i, v := range out {
		if math.Abs(v-3) > 1e-9 {
			t.Errorf("out[%d] = %g, want 3", i, v)
		}
	}
}

func TestIndicatorWindow(t *testing.T) {
	ind := Indicator{
		Event:  "flood",
		Start:  1901,
		Values: make([]float64, 60),
	}
	for i := range ind.Values {
		ind.Values[i] = float64(i)
	}

	w, err := ind.Window(1905, 10)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if len(w) != 20 {
		t.Fatalf("window length = %d, want 20", len(w))
	}
	if w[0] != 4 || w[19] != 23 {
		t.Errorf("window = [%g..%g], want [4..23]", w[0], w[19])
	}

	if _, err := ind.Window(1950, 10); !errors.Is(err, core.ErrWindowNotFound) {
		t.Errorf("out-of-range window: got %v", err)
	}
	if _, err := ind.Window(1900, 10); !errors.Is(err, core.ErrWindowNotFound) {
		t.Errorf("before-start window: got %v", err)
	}
}

func TestCountNonZero(t *testing.T) {
	w := Window{0, 1, 0, 0.5, -2, 0}
	if got := CountNonZero(w); got != 3 {
		t.Errorf("CountNonZero = %d, want 3", got)
	}
}
