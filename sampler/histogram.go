package sampler

import "saw/utils"

// Histogram maps a walk length to the number of chain steps that ended at
// that length.
type Histogram map[int]int

func (h Histogram) Record(length int) {
	h[length]++
}

// Total is the number of recorded observations.
func (h Histogram) Total() int {
	total := 0
	for _, count := range h {
		total += count
	}
	return total
}

// Lengths returns the observed lengths in ascending order.
func (h Histogram) Lengths() []int {
	return utils.SortedKeys(h)
}

// Series returns the observed lengths in ascending order with their
// normalized frequencies, the input shape of a p(n) ∝ (μz)^n n^(γ-1) fit.
func (h Histogram) Series() (lengths []int, probabilities []float64) {
	total := float64(h.Total())
	lengths = h.Lengths()
	probabilities = make([]float64, len(lengths))
	for i, n := range lengths {
		probabilities[i] = float64(h[n]) / total
	}
	return lengths, probabilities
}

// Mean is the average recorded length, or 0 for an empty histogram.
func (h Histogram) Mean() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for n, count := range h {
		sum += n * count
	}
	return float64(sum) / float64(total)
}

// Merge adds the counts of other into h.
func (h Histogram) Merge(other Histogram) {
	for n, count := range other {
		h[n] += count
	}
}
