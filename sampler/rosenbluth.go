package sampler

import (
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"saw/experiments/metrics"
	"saw/lattice"
)

// Rosenbluth estimates c_L by biased sequential growth. Each trial grows a
// walk from the origin, stepping uniformly among the currently free
// neighbors, and multiplies a weight by the number of choices m at every
// step. The weight undoes the bias of picking one of m branches instead of
// all of them, so its mean over trials is an unbiased estimate of c_L.
type Rosenbluth struct {
	goroutines int
	metrics    metrics.Collector
}

type RosenbluthEstimate struct {
	Length       int
	Trials       int
	TotalWeight  *big.Int
	MeanWeight   float64 // Unbiased estimate of c_L; trapped trials count as zero
	SuccessRatio float64 // Fraction of trials that were not trapped
}

// Mu returns MeanWeight^(1/L), or NaN for L = 0.
func (e RosenbluthEstimate) Mu() float64 {
	if e.Length == 0 {
		return math.NaN()
	}
	return math.Pow(e.MeanWeight, 1/float64(e.Length))
}

func NewRosenbluth(options ...Option) (*Rosenbluth, error) {
	c := newConfig(options)
	if c.goroutines <= 0 {
		return nil, fmt.Errorf("rosenbluth with %d goroutines: %w", c.goroutines, ErrNonPositiveGoroutines)
	}
	return &Rosenbluth{
		goroutines: c.goroutines,
		metrics:    c.metrics,
	}, nil
}

// SampleWeightedSAW grows one walk of the given length and returns it with
// its Rosenbluth weight. A trapped walk is returned as far as it got, with
// weight zero.
func SampleWeightedSAW(length int, rng *rand.Rand) (*lattice.Walk, *big.Int, error) {
	if length < 0 {
		return nil, nil, fmt.Errorf("sample weighted walk of length %d: %w", length, ErrNegativeLength)
	}
	walk, weight := sampleWeighted(length, rng)
	return walk, weight, nil
}

func sampleWeighted(length int, rng *rand.Rand) (*lattice.Walk, *big.Int) {
	walk := lattice.NewWalk(lattice.Origin)
	weight := big.NewInt(1)
	m := new(big.Int)
	for i := 0; i < length; i++ {
		free := walk.FreeNeighbors()
		if len(free) == 0 {
			return walk, weight.SetInt64(0)
		}
		weight.Mul(weight, m.SetInt64(int64(len(free))))
		walk.Extend(free[rng.Intn(len(free))])
	}
	return walk, weight
}

// EstimateSAWCount runs trials sequential Rosenbluth trials on rng.
func EstimateSAWCount(length, trials int, rng *rand.Rand) (RosenbluthEstimate, error) {
	r, err := NewRosenbluth()
	if err != nil {
		return RosenbluthEstimate{}, err
	}
	return r.Estimate(length, trials, rng)
}

// Estimate averages the weights of trials independent walks. With more than
// one goroutine, each worker draws from its own stream seeded from rng, so
// results are reproducible for a fixed seed and worker count.
func (r *Rosenbluth) Estimate(length, trials int, rng *rand.Rand) (RosenbluthEstimate, error) {
	if length < 0 {
		return RosenbluthEstimate{}, fmt.Errorf("rosenbluth estimate for length %d: %w", length, ErrNegativeLength)
	}
	if trials <= 0 {
		return RosenbluthEstimate{}, fmt.Errorf("rosenbluth estimate with %d trials: %w", trials, ErrNonPositiveTrials)
	}

	r.metrics.Start("rosenbluth")

	total, successes := r.run(length, trials, rng)

	mean, _ := new(big.Float).Quo(new(big.Float).SetInt(total), big.NewFloat(float64(trials))).Float64()
	estimate := RosenbluthEstimate{
		Length:       length,
		Trials:       trials,
		TotalWeight:  total,
		MeanWeight:   mean,
		SuccessRatio: float64(successes) / float64(trials),
	}

	log.Debug().Msgf("rosenbluth L=%d trials=%d mean weight=%g success ratio=%.4f",
		length, trials, estimate.MeanWeight, estimate.SuccessRatio)
	return estimate, nil
}

func (r *Rosenbluth) run(length, trials int, rng *rand.Rand) (*big.Int, int) {
	workers := min(r.goroutines, trials)
	if workers == 1 {
		return r.trials(length, trials, rng)
	}

	// Seed every worker before any of them starts so the streams only
	// depend on rng and the worker count.
	seeds := make([]uint64, workers)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	perWorker := trials / workers
	remainder := trials % workers

	var lock sync.Mutex
	var wg sync.WaitGroup
	total := new(big.Int)
	successes := 0
	for i := 0; i < workers; i++ {
		n := perWorker
		if i == workers-1 {
			n += remainder
		}

		wg.Add(1)
		go func(seed uint64, n int) {
			defer wg.Done()

			t, s := r.trials(length, n, rand.New(rand.NewSource(seed)))
			lock.Lock()
			defer lock.Unlock()
			total.Add(total, t)
			successes += s
		}(seeds[i], n)
	}

	wg.Wait()
	return total, successes
}

func (r *Rosenbluth) trials(length, n int, rng *rand.Rand) (*big.Int, int) {
	total := new(big.Int)
	successes := 0
	for i := 0; i < n; i++ {
		_, weight := sampleWeighted(length, rng)
		r.metrics.AddStep()
		if weight.Sign() > 0 {
			successes++
			r.metrics.AddAccepted()
		} else {
			r.metrics.AddTrapped()
		}
		total.Add(total, weight)
	}
	return total, successes
}
