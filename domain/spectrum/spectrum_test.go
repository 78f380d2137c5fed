package spectrum

import (
	"math"
	"reflect"
	"testing"

	"goperiod/domain/series"
)

func cosineCorrelation(n int, period float64) series.Correlation {
	c := make(series.Correlation, n)
	for k := range c {
		c[k] = math.Cos(2 * math.Pi * float64(k) / period)
	}
	return c
}

func TestDecomposeCosine(t *testing.T) {
	// cos(2πk/5) over 25 samples concentrates all energy at bin 5 with
	// coefficient magnitude n/2; the folded power is 2*(n/2)^2.
	const n = 25
	spec := Decompose(cosineCorrelation(n, 5))

	if len(spec.Coeffs) != n/2+1 {
		t.Fatalf("coefficient count = %d, want %d", len(spec.Coeffs), n/2+1)
	}
	if spec.N != n {
		t.Fatalf("N = %d, want %d", spec.N, n)
	}

	want := 2 * (float64(n) / 2) * (float64(n) / 2)
	if math.Abs(spec.Power[5]-want) > 1e-6 {
		t.Errorf("power[5] = %g, want %g", spec.Power[5], want)
	}
	for i, p := range spec.Power {
		if i == 5 {
			continue
		}
		if p > want/1e6 {
			t.Errorf("power[%d] = %g, expected negligible", i, p)
		}
	}
}

func TestDecomposeDCNotDoubled(t *testing.T) {
	c := make(series.Correlation, 8)
	for i := range c {
		c[i] = 1
	}
	spec := Decompose(c)
	// DC coefficient is the plain sum; its power must not be doubled.
	if math.Abs(spec.Power[0]-64) > 1e-9 {
		t.Errorf("power[0] = %g, want 64", spec.Power[0])
	}
}

func TestReconstructRoundTrip(t *testing.T) {
	c := series.Correlation{0.4, -1.2, 3.3, 0.1, -0.7, 2.2, 0.9, -0.3}
	spec := Decompose(c)
	back := Reconstruct(spec.Coeffs, spec.N)
	for i := range c {
		if math.Abs(back[i]-c[i]) > 1e-9 {
			t.Errorf("back[%d] = %g, want %g", i, back[i], c[i])
		}
	}
}

func TestRankStableTies(t *testing.T) {
	coeffs := []complex128{2, 5, complex(0, 5), 1}
	got := Rank(coeffs)
	// Equal magnitudes keep ascending index order.
	want := []int{1, 2, 0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

func TestSelectGroupHarmonicFamily(t *testing.T) {
	g, ok := SelectGroup([]int{5, 0, 10, 3, 7})
	if !ok {
		t.Fatal("expected surviving group")
	}
	if !reflect.DeepEqual(g.Indices, []int{5, 0, 10}) {
		t.Errorf("indices = %v, want [5 0 10]", g.Indices)
	}
	if g.Fundamental != 5 {
		t.Errorf("fundamental = %d, want 5", g.Fundamental)
	}
	if g.FirstNonZero() != 5 {
		t.Errorf("first non-zero = %d, want 5", g.FirstNonZero())
	}
}

func TestSelectGroupDegenerateGCD(t *testing.T) {
	// gcd(3,2)=1 is corrected to the top bin itself.
	g, ok := SelectGroup([]int{3, 2, 6})
	if !ok {
		t.Fatal("expected surviving group")
	}
	if g.Fundamental != 3 {
		t.Errorf("fundamental = %d, want 3", g.Fundamental)
	}
	if !reflect.DeepEqual(g.Indices, []int{3}) {
		t.Errorf("indices = %v, want [3]", g.Indices)
	}
}

func TestSelectGroupDegenerateTopBinOne(t *testing.T) {
	// With the top bin at 1 the correction falls back to the second bin.
	g, ok := SelectGroup([]int{1, 4, 3})
	if !ok {
		t.Fatal("expected surviving group")
	}
	if g.Fundamental != 4 {
		t.Errorf("fundamental = %d, want 4", g.Fundamental)
	}
	if !reflect.DeepEqual(g.Indices, []int{1, 4}) {
		t.Errorf("indices = %v, want [1 4]", g.Indices)
	}
	if g.FirstNonZero() != 1 {
		t.Errorf("first non-zero = %d, want 1", g.FirstNonZero())
	}
}

func TestSelectGroupMonotonicTrimLosesFundamental(t *testing.T) {
	// [4 2 8] is harmonically consistent under fundamental 2 but the
	// non-zero members decrease, so the trim cuts back to [4] and the
	// fundamental is gone.
	g, ok := SelectGroup([]int{4, 2, 8, 5})
	if ok {
		t.Fatalf("expected lost fundamental, got group %v", g.Indices)
	}
	if g.Fundamental != 2 {
		t.Errorf("fundamental = %d, want 2", g.Fundamental)
	}
}

func TestSelectGroupSingleNonZero(t *testing.T) {
	g, ok := SelectGroup([]int{0, 7})
	if !ok {
		t.Fatal("expected surviving group")
	}
	if g.Fundamental != 7 {
		t.Errorf("fundamental = %d, want 7", g.Fundamental)
	}
	if !reflect.DeepEqual(g.Indices, []int{0, 7}) {
		t.Errorf("indices = %v, want [0 7]", g.Indices)
	}
}

func TestSelectGroupNoNonZero(t *testing.T) {
	if _, ok := SelectGroup([]int{0}); ok {
		t.Error("expected no group for DC-only ranking")
	}
	if _, ok := SelectGroup(nil); ok {
		t.Error("expected no group for empty ranking")
	}
}

func TestSelectGroupNonZeroMonotonicInvariant(t *testing.T) {
	rankings := [][]int{
		{5, 0, 10, 3, 7},
		{3, 2, 6},
		{1, 4, 3},
		{4, 2, 8, 5},
		{0, 7},
		{2, 4, 6, 0, 8, 1},
		{6, 3, 0, 9, 12},
	}
	for _, ranking := range rankings {
		g, _ := SelectGroup(ranking)
		prev := 0
		for _, idx := range g.Indices {
			if idx == 0 {
				continue
			}
			if prev != 0 && idx < prev {
				t.Errorf("ranking %v: non-zero members %v not non-decreasing", ranking, g.Indices)
				break
			}
			prev = idx
		}
	}
}
