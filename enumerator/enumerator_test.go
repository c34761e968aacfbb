package enumerator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"saw/lattice"
)

func TestCountSAW(t *testing.T) {
	t.Run("hand-verifiable small lengths", func(t *testing.T) {
		expected := []uint64{1, 4, 12, 36, 100}
		for l, want := range expected {
			got, err := CountSAW(l)

			require.NoError(t, err)
			require.Equal(t, want, got, "c_%d mismatch", l)
		}
	})

	t.Run("known values from the literature", func(t *testing.T) {
		expected := map[int]uint64{5: 284, 6: 780, 8: 5916, 10: 44100}
		for l, want := range expected {
			got, err := CountSAW(l)

			require.NoError(t, err)
			require.Equal(t, want, got, "c_%d mismatch", l)
		}
	})

	t.Run("rejecting negative lengths", func(t *testing.T) {
		_, err := CountSAW(-1)

		require.ErrorIs(t, err, ErrNegativeLength)
	})
}

func TestCounts(t *testing.T) {
	got, err := Counts(4)

	require.NoError(t, err)
	require.Equal(t, []uint64{1, 4, 12, 36, 100}, got)

	_, err = Counts(-2)
	require.ErrorIs(t, err, ErrNegativeLength)
}

func TestEnumerate(t *testing.T) {
	t.Run("visiting every walk exactly once", func(t *testing.T) {
		seen := map[[5]lattice.Position]bool{}
		err := Enumerate(4, func(w *lattice.Walk) {
			require.Equal(t, 4, w.Len(), "Visited walk should have the requested length")
			require.True(t, w.SelfAvoiding(), "Visited walk should be self-avoiding")
			var key [5]lattice.Position
			copy(key[:], w.Positions())
			require.False(t, seen[key], "Walk should be visited once")
			seen[key] = true
		})

		require.NoError(t, err)
		require.Len(t, seen, 100)
	})

	t.Run("zero length visits the origin", func(t *testing.T) {
		visits := 0
		err := Enumerate(0, func(w *lattice.Walk) {
			visits++
			require.Equal(t, []lattice.Position{lattice.Origin}, w.Positions())
		})

		require.NoError(t, err)
		require.Equal(t, 1, visits)
	})
}

func BenchmarkCountSAW(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = CountSAW(12)
	}
}
