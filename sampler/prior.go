package sampler

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"saw/experiments/metrics"
	"saw/lattice"
)

// PriorChain is the calibration-free grow/shrink chain. It moves one step
// at a time and replaces the fugacity by a prior guess of μ, accepting a
// growth with probability min(1, 3/μ) and a shrink with min(1, μ/3).
//
// This is an approximation: the ratios assume every end has exactly three
// free continuations, which is false near the walk's own body, so the chain
// does not satisfy detailed balance for the SAW measure. Use GrandCanonical
// when the length distribution must be exact.
type PriorChain struct {
	mu      float64
	metrics metrics.Collector
}

func NewPriorChain(mu float64, options ...Option) (*PriorChain, error) {
	if mu <= 0 {
		return nil, fmt.Errorf("prior chain with mu=%g: %w", mu, ErrNonPositiveMu)
	}
	c := newConfig(options)
	return &PriorChain{
		mu:      mu,
		metrics: c.metrics,
	}, nil
}

// Run performs steps chain steps from the zero-length walk at the origin and
// records the length after every step.
func (p *PriorChain) Run(steps int, rng *rand.Rand) (Histogram, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("prior chain run with %d steps: %w", steps, ErrNonPositiveSteps)
	}

	p.metrics.Start("prior_chain")

	walk := lattice.NewWalk(lattice.Origin)
	hist := Histogram{}
	for i := 0; i < steps; i++ {
		recordOutcome(p.metrics, p.Step(walk, rng))
		hist.Record(walk.Len())
	}

	log.Debug().Msgf("prior chain mu=%g steps=%d mean length=%.2f", p.mu, steps, hist.Mean())
	return hist, nil
}

// Step applies one single-edge grow or shrink proposal to walk in place.
func (p *PriorChain) Step(walk *lattice.Walk, rng *rand.Rand) Outcome {
	if rng.Float64() < 0.5 {
		if !extendOnce(walk, rng) {
			return Trapped
		}
		if rng.Float64() < math.Min(1, 3/p.mu) {
			return Accepted
		}
		walk.Truncate(1)
		return Rejected
	}

	if walk.Len() == 0 {
		return Rejected
	}
	if rng.Float64() < math.Min(1, p.mu/3) {
		walk.Truncate(1)
		return Accepted
	}
	return Rejected
}
