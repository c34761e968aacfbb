package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[int]string{3: "c", 1: "a", 2: "b"})

	require.Equal(t, []int{1, 2, 3}, got)
}

func TestPow(t *testing.T) {
	require.Equal(t, 1, Pow(4, 0))
	require.Equal(t, 64, Pow(4, 3))
	require.InDelta(t, 0.125, Pow(0.5, 3), 1e-12)
}
