// Package enumerator counts self-avoiding walks exactly by depth-first
// backtracking.
//
// Running time grows like μ^L with μ ≈ 2.638, so the enumerator is only
// meant for short walks (L up to about 20). It is the ground truth the
// stochastic estimators in package sampler are checked against.
package enumerator

import (
	"errors"
	"fmt"

	"saw/lattice"
)

// ErrNegativeLength is returned for walk lengths below zero.
var ErrNegativeLength = errors.New("enumerator: walk length must be non-negative")

// CountSAW returns c_L, the number of self-avoiding walks of length L that
// start at the origin. Walks related by a rotation or reflection are counted
// separately.
func CountSAW(length int) (uint64, error) {
	if length < 0 {
		return 0, fmt.Errorf("count walks of length %d: %w", length, ErrNegativeLength)
	}
	return count(lattice.NewWalk(lattice.Origin), length), nil
}

func count(walk *lattice.Walk, remaining int) uint64 {
	if remaining == 0 {
		return 1
	}
	var total uint64
	for _, next := range lattice.Neighbors(walk.End()) {
		if !walk.Extend(next) {
			continue
		}
		total += count(walk, remaining-1)
		walk.Truncate(1)
	}
	return total
}

// Counts returns c_0 ... c_maxLength.
func Counts(maxLength int) ([]uint64, error) {
	if maxLength < 0 {
		return nil, fmt.Errorf("count walks up to length %d: %w", maxLength, ErrNegativeLength)
	}
	counts := make([]uint64, maxLength+1)
	for l := range counts {
		counts[l], _ = CountSAW(l)
	}
	return counts, nil
}

// Enumerate calls visit once for every self-avoiding walk of the given
// length. The walk passed to visit is shared across calls and must not be
// retained or modified; Clone it to keep it.
func Enumerate(length int, visit func(*lattice.Walk)) error {
	if length < 0 {
		return fmt.Errorf("enumerate walks of length %d: %w", length, ErrNegativeLength)
	}
	enumerate(lattice.NewWalk(lattice.Origin), length, visit)
	return nil
}

func enumerate(walk *lattice.Walk, remaining int, visit func(*lattice.Walk)) {
	if remaining == 0 {
		visit(walk)
		return
	}
	for _, next := range lattice.Neighbors(walk.End()) {
		if !walk.Extend(next) {
			continue
		}
		enumerate(walk, remaining-1, visit)
		walk.Truncate(1)
	}
}
