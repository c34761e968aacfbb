package lattice

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNeighbors(t *testing.T) {
	t.Run("listing von Neumann neighbors in step order", func(t *testing.T) {
		got := Neighbors(Position{X: 2, Y: -1})

		require.Equal(t, [4]Position{{3, -1}, {1, -1}, {2, 0}, {2, -2}}, got,
			"Neighbors should follow +x, -x, +y, -y")
	})
}

func TestIsSelfAvoiding(t *testing.T) {
	t.Run("distinct positions", func(t *testing.T) {
		require.True(t, IsSelfAvoiding([]Position{{0, 0}, {1, 0}, {1, 1}, {0, 1}}),
			"A square missing its closing edge is self-avoiding")
	})

	t.Run("closed loop revisits the origin", func(t *testing.T) {
		require.False(t, IsSelfAvoiding([]Position{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}),
			"Returning to the origin is a repeat")
	})

	t.Run("random walks with and without induced repeats", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 200; trial++ {
			walk := NewWalk(Origin)
			for i := 0; i < 30; i++ {
				free := walk.FreeNeighbors()
				if len(free) == 0 {
					break
				}
				walk.Extend(free[rng.Intn(len(free))])
			}
			positions := walk.Positions()
			require.True(t, IsSelfAvoiding(positions), "Grown walks should be self-avoiding")
			require.True(t, walk.SelfAvoiding(), "Occupancy index should agree with the predicate")

			if len(positions) < 2 {
				continue
			}
			repeated := append(positions, positions[rng.Intn(len(positions))])
			require.False(t, IsSelfAvoiding(repeated), "Appending a visited site should break self-avoidance")
			require.False(t, WalkOf(repeated...).SelfAvoiding(), "Occupancy index should see the repeat")
		}
	})
}

func TestWalkExtendTruncate(t *testing.T) {
	t.Run("extending onto a free neighbor", func(t *testing.T) {
		walk := NewWalk(Origin)

		require.True(t, walk.Extend(Position{1, 0}))
		require.Equal(t, 1, walk.Len(), "Length counts edges")
		require.Equal(t, Position{1, 0}, walk.End())
		require.True(t, walk.Occupied(Position{1, 0}))
	})

	t.Run("refusing occupied or non-adjacent sites", func(t *testing.T) {
		walk := StraightWalk(2)

		require.False(t, walk.Extend(Position{1, 0}), "Occupied site should be refused")
		require.False(t, walk.Extend(Position{5, 5}), "Non-adjacent site should be refused")
		require.Equal(t, 2, walk.Len())
	})

	t.Run("truncating keeps the occupancy index in sync", func(t *testing.T) {
		walk := StraightWalk(4)
		walk.Truncate(2)

		require.Equal(t, 2, walk.Len())
		require.False(t, walk.Occupied(Position{3, 0}))
		require.False(t, walk.Occupied(Position{4, 0}))
		require.True(t, walk.Extend(Position{3, 0}), "Truncated site should be free again")
	})

	t.Run("truncating past the start panics", func(t *testing.T) {
		walk := StraightWalk(1)

		require.Panics(t, func() { walk.Truncate(2) })
	})

	t.Run("clones are independent", func(t *testing.T) {
		walk := StraightWalk(2)
		clone := walk.Clone()
		clone.Truncate(1)

		require.Equal(t, 2, walk.Len())
		require.True(t, walk.Occupied(Position{2, 0}))
	})
}

func TestFreeNeighbors(t *testing.T) {
	t.Run("trapped end has no free neighbors", func(t *testing.T) {
		// Spiral that closes in on (1,1).
		walk := WalkOf(
			Position{1, 0}, Position{2, 0}, Position{2, 1}, Position{2, 2},
			Position{1, 2}, Position{0, 2}, Position{0, 1}, Position{1, 1},
		)

		require.Empty(t, walk.FreeNeighbors(), "Center of the spiral should be trapped")
	})

	t.Run("fresh walk has four free neighbors", func(t *testing.T) {
		require.Len(t, NewWalk(Origin).FreeNeighbors(), 4)
	})
}

func TestEndToEndSquared(t *testing.T) {
	walk := WalkOf(Position{0, 0}, Position{1, 0}, Position{1, 1})

	require.Equal(t, 2, walk.EndToEndSquared())
}
