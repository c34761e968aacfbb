package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"saw/experiments/metrics"
	"saw/lattice"
)

func TestPivotMove(t *testing.T) {
	t.Run("rotating the tail of a straight walk", func(t *testing.T) {
		walk := lattice.StraightWalk(4)

		got := PivotMove(walk, 2, lattice.Rotate90)

		require.Equal(t, []lattice.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}, got.Positions())
		require.True(t, got.SelfAvoiding())
		require.Equal(t, []lattice.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}, walk.Positions(),
			"Original walk should not be modified")
	})

	t.Run("pivoting at the free end is the identity", func(t *testing.T) {
		walk := lattice.StraightWalk(3)

		got := PivotMove(walk, 3, lattice.Rotate180)

		require.Equal(t, walk.Positions(), got.Positions())
	})

	t.Run("degenerate pivot intersects the walk", func(t *testing.T) {
		walk := lattice.WalkOf(lattice.Position{X: 0, Y: 0}, lattice.Position{X: 1, Y: 0}, lattice.Position{X: 1, Y: 1}, lattice.Position{X: 0, Y: 1})

		got := PivotMove(walk, 1, lattice.Rotate90)

		require.False(t, got.SelfAvoiding(), "Tail should land on the origin")
	})
}

func TestPivotStep(t *testing.T) {
	t.Run("rejected pivots keep the current state", func(t *testing.T) {
		p, err := NewPivot(3)
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(10))
		walk := lattice.WalkOf(lattice.Position{X: 0, Y: 0}, lattice.Position{X: 1, Y: 0}, lattice.Position{X: 1, Y: 1}, lattice.Position{X: 0, Y: 1})

		rejections := 0
		for i := 0; i < 200; i++ {
			next, accepted := p.Step(walk, rng)
			require.True(t, next.SelfAvoiding())
			require.Equal(t, 3, next.Len())
			if !accepted {
				rejections++
				require.Same(t, walk, next, "Rejected pivot should return the current walk")
			}
		}
		require.Positive(t, rejections)
	})
}

func TestPivotRun(t *testing.T) {
	t.Run("recorded configurations are self-avoiding walks of length L", func(t *testing.T) {
		const length = 20
		p, err := NewPivot(length, WithEquilibration(100), WithStride(10))
		require.NoError(t, err)

		result, err := p.Run(1000, rand.New(rand.NewSource(12)))
		require.NoError(t, err)

		require.Len(t, result.Configurations, 90, "Steps 100, 110, ..., 990 should be recorded")
		for _, walk := range result.Configurations {
			require.Len(t, walk.Positions(), length+1)
			require.True(t, lattice.IsSelfAvoiding(walk.Positions()))
			require.Equal(t, lattice.Origin, walk.Start(), "Start is never pivoted")
		}
		require.GreaterOrEqual(t, result.AcceptanceRatio(), 0.0)
		require.LessOrEqual(t, result.AcceptanceRatio(), 1.0)
		require.Greater(t, result.AcceptanceRatio(), 0.2)
		require.Less(t, result.AcceptanceRatio(), 1.0)
		require.Greater(t, result.MeanSquaredEndToEnd(), 0.0)
		require.LessOrEqual(t, result.MeanSquaredEndToEnd(), float64(length*length))
	})

	t.Run("default equilibration discards short runs", func(t *testing.T) {
		p, err := NewPivot(5)
		require.NoError(t, err)

		result, err := p.Run(500, rand.New(rand.NewSource(12)))
		require.NoError(t, err)

		require.Empty(t, result.Configurations)
		require.Equal(t, 0.0, result.MeanSquaredEndToEnd())
	})

	t.Run("metrics agree with the result", func(t *testing.T) {
		collector := metrics.NewCollector()
		p, err := NewPivot(10, WithEquilibration(0), WithStride(1), WithMetrics(collector))
		require.NoError(t, err)

		result, err := p.Run(300, rand.New(rand.NewSource(3)))
		require.NoError(t, err)

		metric := collector.Complete()
		require.Len(t, result.Configurations, 300)
		require.Equal(t, 300, metric.Steps)
		require.Equal(t, result.Accepted, metric.Accepted)
	})

	t.Run("rejecting invalid parameters", func(t *testing.T) {
		_, err := NewPivot(0)
		require.ErrorIs(t, err, ErrPivotLength)

		_, err = NewPivot(5, WithEquilibration(-1))
		require.ErrorIs(t, err, ErrNegativeEquilibration)

		_, err = NewPivot(5, WithStride(0))
		require.ErrorIs(t, err, ErrNonPositiveStride)

		p, err := NewPivot(5)
		require.NoError(t, err)
		_, err = p.Run(0, rand.New(rand.NewSource(1)))
		require.ErrorIs(t, err, ErrNonPositiveSteps)
	})
}
