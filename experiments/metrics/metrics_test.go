package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting concurrently", func(t *testing.T) {
		c := NewCollector()
		c.Start("rosenbluth")

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddStep()
					if j%4 == 0 {
						c.AddTrapped()
					} else {
						c.AddAccepted()
					}
				}
			}()
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, "rosenbluth", got.Sampler)
		require.Equal(t, 800, got.Steps)
		require.Equal(t, 600, got.Accepted)
		require.Equal(t, 200, got.Trapped)
		require.InDelta(t, 0.75, got.AcceptanceRatio(), 1e-12)
	})

	t.Run("restarting resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("pivot")
		c.AddStep()
		c.Start("pivot")

		require.Equal(t, 0, c.Complete().Steps)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("pivot")
		c.AddStep()

		require.Equal(t, RunMetric{}, c.Complete())
		require.Equal(t, 0.0, c.Complete().AcceptanceRatio())
	})
}

func TestWriter(t *testing.T) {
	t.Run("writing exact counts as csv", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "exact")
		require.NoError(t, err)

		err = w.WriteExactCounts([]ExactRecord{{Length: 0, Count: 1}, {Length: 3, Count: 36}})
		require.NoError(t, err)

		f, err := os.Open(filepath.Join(w.Dir(), "exact_counts.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Equal(t, [][]string{{"length", "count"}, {"0", "1"}, {"3", "36"}}, rows)
	})

	t.Run("writing a named histogram", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "chain")
		require.NoError(t, err)

		err = w.WriteHistogram("grand_canonical", []HistogramRecord{{Length: 2, Count: 5, Probability: 0.5}})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(w.Dir(), "grand_canonical_histogram.csv"))
		require.NoError(t, err, "Histogram file should exist")
	})

	t.Run("writers created together get distinct directories", func(t *testing.T) {
		outputDir := t.TempDir()
		dirs := map[string]bool{}
		for i := 0; i < 5; i++ {
			w, err := NewWriter(outputDir, "saw")
			require.NoError(t, err)
			require.False(t, dirs[w.Dir()], "Directory %s should not be reused", w.Dir())
			dirs[w.Dir()] = true
		}

		entries, err := os.ReadDir(filepath.Join(outputDir, "saw"))
		require.NoError(t, err)
		require.Len(t, entries, 5)
	})
}
