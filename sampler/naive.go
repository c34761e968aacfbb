package sampler

import (
	"fmt"

	"golang.org/x/exp/rand"

	"saw/lattice"
	"saw/utils"
)

type NaiveEstimate struct {
	Length int
	Trials int
	Ratio  float64 // Fraction of unrestricted random walks that were self-avoiding
	Count  float64 // 4^L * Ratio, an estimate of c_L
}

// RandomWalk returns an unrestricted random walk of the given length from
// the origin. Sites may repeat.
func RandomWalk(length int, rng *rand.Rand) []lattice.Position {
	pos := lattice.Origin
	path := make([]lattice.Position, 0, length+1)
	path = append(path, pos)
	for i := 0; i < length; i++ {
		pos = pos.Add(lattice.Steps[rng.Intn(len(lattice.Steps))])
		path = append(path, pos)
	}
	return path
}

// EstimateNaive draws trials random walks and counts the self-avoiding ones.
// The success ratio decays like (μ/4)^L, so the estimate is useless beyond a
// few dozen steps; it is kept as the baseline the weighted samplers improve on.
func EstimateNaive(length, trials int, rng *rand.Rand) (NaiveEstimate, error) {
	if length < 0 {
		return NaiveEstimate{}, fmt.Errorf("naive estimate for length %d: %w", length, ErrNegativeLength)
	}
	if trials <= 0 {
		return NaiveEstimate{}, fmt.Errorf("naive estimate with %d trials: %w", trials, ErrNonPositiveTrials)
	}

	valid := 0
	for i := 0; i < trials; i++ {
		if lattice.IsSelfAvoiding(RandomWalk(length, rng)) {
			valid++
		}
	}

	estimate := NaiveEstimate{
		Length: length,
		Trials: trials,
		Ratio:  float64(valid) / float64(trials),
	}
	// 4^L overflows to +Inf for L >= 512.
	if valid > 0 {
		estimate.Count = utils.Pow(4.0, length) * estimate.Ratio
	}
	return estimate, nil
}
