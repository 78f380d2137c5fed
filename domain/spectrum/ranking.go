package spectrum

import (
	"math/cmplx"
	"sort"
)

// Rank returns the spectrum indices ordered by descending coefficient
// magnitude. The sort is stable with ties keeping ascending index order,
// so rankings are bit-reproducible regardless of how the pipeline is
// batched or parallelized.
func Rank(coeffs []complex128) []int {
	idx := make([]int, len(coeffs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return cmplx.Abs(coeffs[idx[i]]) > cmplx.Abs(coeffs[idx[j]])
	})
	return idx
}
