// meta/meta.go
package meta

// CONNECTIVE_CONSTANT is the known value of μ on the square lattice.
const CONNECTIVE_CONSTANT = 2.638158

// GAMMA is the exact 2D critical exponent 43/32.
const GAMMA = 43.0 / 32.0

// FUGACITY is the default z for grand-canonical runs (ω = 1).
const FUGACITY = 0.3773

// MAX_DELTA_N bounds the grow/shrink step size on long walks.
const MAX_DELTA_N = 5

// GROWTH_THRESHOLD is the walk length, in edges, above which Δn is
// randomized. Walks of 51 or more positions qualify.
const GROWTH_THRESHOLD = 49

// EQUILIBRATION is the default number of discarded pivot steps.
const EQUILIBRATION = 1000

// STRIDE is the default pivot recording interval.
const STRIDE = 100

// TRIALS is the default number of Rosenbluth or naive trials.
const TRIALS = 100000
