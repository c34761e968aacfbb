// Package sampler holds the stochastic estimators for self-avoiding walks:
// naive rejection sampling, Rosenbluth weighted growth, the grand-canonical
// and fixed-prior grow/shrink chains, and the canonical pivot chain.
//
// Every stochastic call takes an explicit *rand.Rand. Nothing in the package
// keeps global random state, so a fixed seed reproduces a run exactly.
// Lengths always count edges: a walk of length n has n+1 positions.
package sampler

import (
	"errors"

	"saw/experiments/metrics"
	"saw/meta"
)

var (
	// ErrNegativeLength indicates a walk length below zero.
	ErrNegativeLength = errors.New("sampler: walk length must be non-negative")
	// ErrPivotLength indicates a pivot chain shorter than one edge.
	ErrPivotLength = errors.New("sampler: pivot walk length must be at least 1")
	// ErrNonPositiveTrials indicates a trial count of zero or less.
	ErrNonPositiveTrials = errors.New("sampler: number of trials must be positive")
	// ErrNonPositiveSteps indicates a chain step count of zero or less.
	ErrNonPositiveSteps = errors.New("sampler: number of steps must be positive")
	// ErrNonPositiveFugacity indicates z <= 0.
	ErrNonPositiveFugacity = errors.New("sampler: fugacity must be positive")
	// ErrNonPositiveOmega indicates ω <= 0.
	ErrNonPositiveOmega = errors.New("sampler: omega must be positive")
	// ErrNonPositiveMu indicates a prior connective constant <= 0.
	ErrNonPositiveMu = errors.New("sampler: prior mu must be positive")
	// ErrInvalidDeltaN indicates a maximum step size below one.
	ErrInvalidDeltaN = errors.New("sampler: max delta n must be at least 1")
	// ErrNegativeThreshold indicates a negative growth threshold.
	ErrNegativeThreshold = errors.New("sampler: growth threshold must be non-negative")
	// ErrNegativeEquilibration indicates a negative equilibration prefix.
	ErrNegativeEquilibration = errors.New("sampler: equilibration must be non-negative")
	// ErrNonPositiveStride indicates a recording stride below one.
	ErrNonPositiveStride = errors.New("sampler: stride must be positive")
	// ErrNonPositiveGoroutines indicates fewer than one worker.
	ErrNonPositiveGoroutines = errors.New("sampler: goroutines must be positive")
)

// Outcome is the result of a single Markov-chain step.
type Outcome int

const (
	Rejected Outcome = iota // Proposal made but not accepted; state unchanged
	Accepted                // Proposal accepted; state changed
	Trapped                 // Growth proposal found no free neighbor; state unchanged
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Trapped:
		return "trapped"
	default:
		return "rejected"
	}
}

type config struct {
	goroutines      int
	fugacity        float64
	omega           float64
	maxDeltaN       int
	growthThreshold int
	equilibration   int
	stride          int
	metrics         metrics.Collector
}

type Option func(c *config)

func defaultConfig() *config {
	return &config{ // Default values
		goroutines:      1,
		fugacity:        meta.FUGACITY,
		omega:           1.0,
		maxDeltaN:       meta.MAX_DELTA_N,
		growthThreshold: meta.GROWTH_THRESHOLD,
		equilibration:   meta.EQUILIBRATION,
		stride:          meta.STRIDE,
		metrics:         metrics.NewDummyCollector(),
	}
}

func newConfig(options []Option) *config {
	c := defaultConfig()
	for _, option := range options {
		option(c)
	}
	return c
}

// WithGoroutines splits Rosenbluth trials across n workers.
func WithGoroutines(n int) Option {
	return func(c *config) {
		c.goroutines = n
	}
}

// WithFugacity sets z for the grand-canonical chain.
func WithFugacity(z float64) Option {
	return func(c *config) {
		c.fugacity = z
	}
}

// WithOmega sets the energy-like weight ω (1 for plain SAW statistics).
func WithOmega(omega float64) Option {
	return func(c *config) {
		c.omega = omega
	}
}

// WithMaxDeltaN bounds the randomized grow/shrink step size.
func WithMaxDeltaN(n int) Option {
	return func(c *config) {
		c.maxDeltaN = n
	}
}

// WithGrowthThreshold sets the length above which the step size is randomized.
func WithGrowthThreshold(length int) Option {
	return func(c *config) {
		c.growthThreshold = length
	}
}

// WithEquilibration sets the number of pivot steps discarded before recording.
func WithEquilibration(steps int) Option {
	return func(c *config) {
		c.equilibration = steps
	}
}

// WithStride records every stride-th pivot configuration.
func WithStride(stride int) Option {
	return func(c *config) {
		c.stride = stride
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(c *config) {
		if collector != nil {
			c.metrics = collector
		}
	}
}
