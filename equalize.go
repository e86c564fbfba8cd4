package dotswarm

import "math/rand/v2"

// NewRand returns a PCG-backed random source seeded with seed. The same seed
// reproduces the same shuffles and delays.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Equalize trims every point set to the size N of the smallest one. Each set
// is copied, shuffled with rng and cut to its first N points, so truncation
// carries no raster-order bias. Sets are processed in order and the output
// keeps the input's formation order. The inputs are not modified.
//
// When some set is empty, N is 0: every result set is empty and the returned
// error is a *DegenerateInputError. The result is still valid in that case.
func Equalize(rng *rand.Rand, sets [][]Point) ([][]Point, error) {
	if len(sets) == 0 {
		return nil, ErrNoFormations
	}

	n := len(sets[0])
	empty := -1
	for i, s := range sets {
		if len(s) < n {
			n = len(s)
		}
		if len(s) == 0 && empty < 0 {
			empty = i
		}
	}

	out := make([][]Point, len(sets))
	for i, s := range sets {
		shuffled := make([]Point, len(s))
		copy(shuffled, s)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		out[i] = shuffled[:n:n]
	}

	if empty >= 0 {
		return out, &DegenerateInputError{Formation: empty}
	}
	return out, nil
}
