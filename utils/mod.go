package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Pow returns base^exp for a non-negative exponent.
func Pow[T constraints.Integer | constraints.Float](base T, exp int) T {
	result := T(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}
