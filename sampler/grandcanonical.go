package sampler

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"saw/experiments/metrics"
	"saw/lattice"
)

// GrandCanonical is a Metropolis chain over walks of varying length whose
// stationary distribution weights a walk of length n by (z·ω)^n. Each step
// proposes, with equal probability, to grow the walk by Δn steps or to cut
// its last Δn steps. The resulting length histogram follows
// p(n) ∝ (μz)^n n^(γ-1), from which μz and γ can be fitted.
type GrandCanonical struct {
	fugacity        float64
	omega           float64
	maxDeltaN       int
	growthThreshold int
	metrics         metrics.Collector
}

func NewGrandCanonical(options ...Option) (*GrandCanonical, error) {
	c := newConfig(options)
	if c.fugacity <= 0 {
		return nil, fmt.Errorf("grand canonical chain with z=%g: %w", c.fugacity, ErrNonPositiveFugacity)
	}
	if c.omega <= 0 {
		return nil, fmt.Errorf("grand canonical chain with omega=%g: %w", c.omega, ErrNonPositiveOmega)
	}
	if c.maxDeltaN < 1 {
		return nil, fmt.Errorf("grand canonical chain with max delta n=%d: %w", c.maxDeltaN, ErrInvalidDeltaN)
	}
	if c.growthThreshold < 0 {
		return nil, fmt.Errorf("grand canonical chain with threshold=%d: %w", c.growthThreshold, ErrNegativeThreshold)
	}
	return &GrandCanonical{
		fugacity:        c.fugacity,
		omega:           c.omega,
		maxDeltaN:       c.maxDeltaN,
		growthThreshold: c.growthThreshold,
		metrics:         c.metrics,
	}, nil
}

// Fugacity returns z.
func (g *GrandCanonical) Fugacity() float64 {
	return g.fugacity
}

// MuFromFit converts a fitted μz back into μ.
func (g *GrandCanonical) MuFromFit(muZ float64) float64 {
	return muZ / g.fugacity
}

// Run starts from the zero-length walk at the origin and performs steps
// chain steps. Every step, whatever its outcome, records the length of the
// walk after the step.
func (g *GrandCanonical) Run(steps int, rng *rand.Rand) (Histogram, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("grand canonical run with %d steps: %w", steps, ErrNonPositiveSteps)
	}

	g.metrics.Start("grand_canonical")

	walk := lattice.NewWalk(lattice.Origin)
	hist := Histogram{}
	for i := 0; i < steps; i++ {
		recordOutcome(g.metrics, g.Step(walk, rng))
		hist.Record(walk.Len())
	}

	log.Debug().Msgf("grand canonical z=%g omega=%g steps=%d mean length=%.2f",
		g.fugacity, g.omega, steps, hist.Mean())
	return hist, nil
}

// Step applies one grow or shrink proposal to walk in place. The walk is
// left untouched unless the outcome is Accepted.
func (g *GrandCanonical) Step(walk *lattice.Walk, rng *rand.Rand) Outcome {
	deltaN := g.deltaN(walk.Len(), rng)
	if rng.Float64() < 0.5 {
		return g.grow(walk, deltaN, rng)
	}
	return g.shrink(walk, deltaN, rng)
}

// deltaN is 1 on short walks and uniform in [1, maxDeltaN] on long ones,
// which speeds up exploration of large n without changing the target.
func (g *GrandCanonical) deltaN(length int, rng *rand.Rand) int {
	if length > g.growthThreshold {
		return 1 + rng.Intn(g.maxDeltaN)
	}
	return 1
}

func (g *GrandCanonical) grow(walk *lattice.Walk, deltaN int, rng *rand.Rand) Outcome {
	if !extendRandomly(walk, deltaN, rng) {
		return Trapped
	}
	accept := math.Min(1, math.Pow(g.fugacity, float64(deltaN))*math.Pow(g.omega, float64(deltaN)))
	if rng.Float64() < accept {
		return Accepted
	}
	walk.Truncate(deltaN)
	return Rejected
}

func (g *GrandCanonical) shrink(walk *lattice.Walk, deltaN int, rng *rand.Rand) Outcome {
	if walk.Len() < deltaN {
		return Rejected
	}
	accept := math.Min(1, math.Pow(g.fugacity, -float64(deltaN))*math.Pow(g.omega, -float64(deltaN)))
	if rng.Float64() < accept {
		walk.Truncate(deltaN)
		return Accepted
	}
	return Rejected
}

// extendRandomly grows walk by n steps, each onto a uniformly chosen free
// neighbor of the current end. If any step finds no free neighbor the walk is
// restored to its original length and false is returned.
func extendRandomly(walk *lattice.Walk, n int, rng *rand.Rand) bool {
	for i := 0; i < n; i++ {
		if !extendOnce(walk, rng) {
			walk.Truncate(i)
			return false
		}
	}
	return true
}

// extendOnce tries the neighbors of the end in shuffled order and takes the
// first free one.
func extendOnce(walk *lattice.Walk, rng *rand.Rand) bool {
	candidates := lattice.Neighbors(walk.End())
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, next := range candidates {
		if walk.Extend(next) {
			return true
		}
	}
	return false
}

func recordOutcome(collector metrics.Collector, outcome Outcome) {
	collector.AddStep()
	switch outcome {
	case Accepted:
		collector.AddAccepted()
	case Trapped:
		collector.AddTrapped()
	}
}
