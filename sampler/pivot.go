package sampler

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"saw/experiments/metrics"
	"saw/lattice"
)

// Pivot samples self-avoiding walks of a fixed length with the pivot
// algorithm. A step picks a pivot site other than the anchored start and
// rotates everything after it by 90, 180 or 270 degrees about that site. The
// move is accepted iff the result is still self-avoiding. Pivot proposals are
// symmetric, so accept-if-valid already satisfies detailed balance for the
// uniform measure on walks of length L.
type Pivot struct {
	length        int
	equilibration int
	stride        int
	metrics       metrics.Collector
}

type PivotResult struct {
	Length int
	Steps  int
	// Accepted counts pivots that kept the walk self-avoiding.
	Accepted int
	// Configurations are the walks recorded after equilibration. They are
	// never modified by the chain.
	Configurations []*lattice.Walk
}

// AcceptanceRatio is Accepted / Steps.
func (r PivotResult) AcceptanceRatio() float64 {
	if r.Steps == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Steps)
}

// MeanSquaredEndToEnd averages |end - start|^2 over the recorded walks.
func (r PivotResult) MeanSquaredEndToEnd() float64 {
	if len(r.Configurations) == 0 {
		return 0
	}
	sum := 0
	for _, walk := range r.Configurations {
		sum += walk.EndToEndSquared()
	}
	return float64(sum) / float64(len(r.Configurations))
}

func NewPivot(length int, options ...Option) (*Pivot, error) {
	if length < 1 {
		return nil, fmt.Errorf("pivot chain of length %d: %w", length, ErrPivotLength)
	}
	c := newConfig(options)
	if c.equilibration < 0 {
		return nil, fmt.Errorf("pivot chain with equilibration %d: %w", c.equilibration, ErrNegativeEquilibration)
	}
	if c.stride < 1 {
		return nil, fmt.Errorf("pivot chain with stride %d: %w", c.stride, ErrNonPositiveStride)
	}
	return &Pivot{
		length:        length,
		equilibration: c.equilibration,
		stride:        c.stride,
		metrics:       c.metrics,
	}, nil
}

// Run starts from the straight walk along +x and performs steps pivot steps.
// Step i (0-based) is recorded when i >= equilibration and i is a multiple
// of the stride.
func (p *Pivot) Run(steps int, rng *rand.Rand) (PivotResult, error) {
	if steps <= 0 {
		return PivotResult{}, fmt.Errorf("pivot run with %d steps: %w", steps, ErrNonPositiveSteps)
	}

	p.metrics.Start("pivot")

	walk := lattice.StraightWalk(p.length)
	result := PivotResult{Length: p.length, Steps: steps}
	for i := 0; i < steps; i++ {
		next, accepted := p.Step(walk, rng)
		p.metrics.AddStep()
		if accepted {
			result.Accepted++
			p.metrics.AddAccepted()
		}
		walk = next

		if i >= p.equilibration && i%p.stride == 0 {
			result.Configurations = append(result.Configurations, walk)
		}
	}

	log.Debug().Msgf("pivot L=%d steps=%d acceptance=%.4f recorded=%d",
		p.length, steps, result.AcceptanceRatio(), len(result.Configurations))
	return result, nil
}

// Step proposes one random pivot of walk and returns the next state: the
// rotated walk if it is self-avoiding, otherwise walk itself. walk must have
// at least one edge and is never modified.
func (p *Pivot) Step(walk *lattice.Walk, rng *rand.Rand) (*lattice.Walk, bool) {
	index := 1 + rng.Intn(walk.Len())
	rotation := lattice.PivotRotations[rng.Intn(len(lattice.PivotRotations))]

	proposed := PivotMove(walk, index, rotation)
	if !proposed.SelfAvoiding() {
		return walk, false
	}
	return proposed, true
}

// PivotMove returns a new walk equal to walk up to index, with every later
// position rotated about the position at index. The result may intersect
// itself.
func PivotMove(walk *lattice.Walk, index int, rotation lattice.Rotation) *lattice.Walk {
	positions := walk.Positions()
	center := positions[index]
	for i := index + 1; i < len(positions); i++ {
		positions[i] = rotation.RotateAbout(positions[i], center)
	}
	return lattice.WalkOf(positions...)
}
