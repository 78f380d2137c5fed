package spectrum

// Group is the set of Fourier indices retained to reconstruct a
// band-limited fit, together with the GCD-derived fundamental candidate.
// Indices are kept in ranking-encounter order and may include bin 0.
type Group struct {
	Indices     []int
	Fundamental int
}

// FirstNonZero returns the first non-zero index of the group in encounter
// order. After the monotonic trim this is also the smallest, and it is the
// bin at which significance is tested and from which the period is derived.
func (g Group) FirstNonZero() int {
	for _, idx := range g.Indices {
		if idx != 0 {
			return idx
		}
	}
	return 0
}

// Contains reports whether idx is a member of the group.
func (g Group) Contains(idx int) bool {
	for _, v := range g.Indices {
		if v == idx {
			return true
		}
	}
	return false
}

// SelectGroup determines the smallest set of harmonically consistent
// indices from a magnitude ranking.
//
// The fundamental candidate is the GCD of the two most energetic non-zero
// bins; a degenerate GCD of 1 is corrected to the top bin itself when that
// bin is above 1, else to the second. Scanning the ranking from the top,
// bin 0 is always accepted and any other bin is accepted while it is a
// multiple of the fundamental or the fundamental is a multiple of it; the
// first bin failing both ends the scan (prefix semantics — later bins are
// discarded even if they would individually qualify). The accepted prefix
// is then truncated from the back until its non-zero members are
// non-decreasing in encounter order, which keeps a stray large harmonic
// from polluting the fit.
//
// ok is false when the fundamental did not survive the trim; the caller
// must then void the whole decision.
func SelectGroup(ranking []int) (g Group, ok bool) {
	nonZero := make([]int, 0, len(ranking))
	for _, idx := range ranking {
		if idx != 0 {
			nonZero = append(nonZero, idx)
		}
	}
	if len(nonZero) == 0 {
		return Group{}, false
	}

	fund := nonZero[0]
	if len(nonZero) > 1 {
		fund = gcd(nonZero[0], nonZero[1])
		if fund == 1 {
			if nonZero[0] > 1 {
				fund = nonZero[0]
			} else {
				fund = nonZero[1]
			}
		}
	}

	accepted := make([]int, 0, len(ranking))
	for _, idx := range ranking {
		if idx == 0 {
			accepted = append(accepted, 0)
			continue
		}
		if idx%fund == 0 || fund%idx == 0 {
			accepted = append(accepted, idx)
			continue
		}
		break
	}

	for !nonZeroNonDecreasing(accepted) {
		accepted = accepted[:len(accepted)-1]
	}

	g = Group{Indices: accepted, Fundamental: fund}
	return g, g.Contains(fund)
}

func nonZeroNonDecreasing(indices []int) bool {
	prev := 0
	for _, idx := range indices {
		if idx == 0 {
			continue
		}
		if prev != 0 && idx < prev {
			return false
		}
		prev = idx
	}
	return true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
