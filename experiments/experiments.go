package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"saw/enumerator"
	"saw/experiments/metrics"
	"saw/sampler"
)

// Run executes every enabled section of cfg in a fixed order (exact, naive,
// Rosenbluth, grand canonical, prior chain, pivot) and stores the results as
// CSV files. It returns the directory the files were written to.
//
// Every enabled section is validated before any sampling starts, so a bad
// parameter anywhere in cfg fails the run without creating output.
//
// All sections share one random stream seeded with cfg.Seed, so a config file
// reproduces its results exactly.
func Run(cfg Config) (string, error) {
	collector := metrics.NewCollector()
	s, err := newSamplers(cfg, collector)
	if err != nil {
		return "", fmt.Errorf("invalid experiment config: %w", err)
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, "saw")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	runMetrics := []metrics.RunMetric{}

	log.Info().Msgf("starting experiments with seed %d, writing to %s", cfg.Seed, writer.Dir())

	steps := []struct {
		name    string
		enabled bool
		run     func() error
	}{
		{"exact", cfg.Exact.Enabled, func() error { return runExact(cfg.Exact, writer) }},
		{"naive", cfg.Naive.Enabled, func() error { return runNaive(cfg.Naive, writer, rng) }},
		{"rosenbluth", cfg.Rosenbluth.Enabled, func() error {
			metric, err := runRosenbluth(s.rosenbluth, cfg.Rosenbluth, writer, rng, collector)
			runMetrics = append(runMetrics, metric...)
			return err
		}},
		{"grand canonical", cfg.GrandCanonical.Enabled, func() error {
			metric, err := runGrandCanonical(s.grandCanonical, cfg.GrandCanonical, writer, rng, collector)
			runMetrics = append(runMetrics, metric)
			return err
		}},
		{"prior chain", cfg.PriorChain.Enabled, func() error {
			metric, err := runPriorChain(s.priorChain, cfg.PriorChain, writer, rng, collector)
			runMetrics = append(runMetrics, metric)
			return err
		}},
		{"pivot", cfg.Pivot.Enabled, func() error {
			metric, err := runPivot(s.pivot, cfg.Pivot, writer, rng, collector)
			runMetrics = append(runMetrics, metric)
			return err
		}},
	}

	for _, step := range steps {
		if !step.enabled {
			log.Debug().Msgf("skipping %s experiment", step.name)
			continue
		}
		log.Info().Msgf("starting %s experiment...", step.name)
		if err := step.run(); err != nil {
			return writer.Dir(), fmt.Errorf("%s experiment: %w", step.name, err)
		}
		log.Info().Msgf("completed %s experiment", step.name)
	}

	err = writer.WriteRunMetrics(runMetrics)
	if err != nil {
		return writer.Dir(), err
	}
	log.Info().Msg("stored run metrics")

	return writer.Dir(), nil
}

// samplers holds the configured sampler of every enabled section. Disabled
// sections are left nil.
type samplers struct {
	rosenbluth     *sampler.Rosenbluth
	grandCanonical *sampler.GrandCanonical
	priorChain     *sampler.PriorChain
	pivot          *sampler.Pivot
}

func newSamplers(cfg Config, collector metrics.Collector) (samplers, error) {
	var s samplers
	var err error

	if cfg.Exact.Enabled && cfg.Exact.MaxLength < 0 {
		return s, fmt.Errorf("exact: max length %d: %w", cfg.Exact.MaxLength, enumerator.ErrNegativeLength)
	}
	if cfg.Naive.Enabled {
		if err := validateSweep(cfg.Naive); err != nil {
			return s, fmt.Errorf("naive: %w", err)
		}
	}
	if cfg.Rosenbluth.Enabled {
		if err := validateSweep(cfg.Rosenbluth); err != nil {
			return s, fmt.Errorf("rosenbluth: %w", err)
		}
		s.rosenbluth, err = sampler.NewRosenbluth(
			sampler.WithGoroutines(max(cfg.Rosenbluth.Goroutines, 1)),
			sampler.WithMetrics(collector),
		)
		if err != nil {
			return s, fmt.Errorf("rosenbluth: %w", err)
		}
	}
	if cfg.GrandCanonical.Enabled {
		if err := validateSteps(cfg.GrandCanonical.Steps); err != nil {
			return s, fmt.Errorf("grand canonical: %w", err)
		}
		s.grandCanonical, err = sampler.NewGrandCanonical(
			sampler.WithFugacity(cfg.GrandCanonical.Fugacity),
			sampler.WithOmega(cfg.GrandCanonical.Omega),
			sampler.WithMaxDeltaN(cfg.GrandCanonical.MaxDeltaN),
			sampler.WithGrowthThreshold(cfg.GrandCanonical.GrowthThreshold),
			sampler.WithMetrics(collector),
		)
		if err != nil {
			return s, fmt.Errorf("grand canonical: %w", err)
		}
	}
	if cfg.PriorChain.Enabled {
		if err := validateSteps(cfg.PriorChain.Steps); err != nil {
			return s, fmt.Errorf("prior chain: %w", err)
		}
		s.priorChain, err = sampler.NewPriorChain(cfg.PriorChain.Mu, sampler.WithMetrics(collector))
		if err != nil {
			return s, fmt.Errorf("prior chain: %w", err)
		}
	}
	if cfg.Pivot.Enabled {
		if err := validateSteps(cfg.Pivot.Steps); err != nil {
			return s, fmt.Errorf("pivot: %w", err)
		}
		s.pivot, err = sampler.NewPivot(cfg.Pivot.Length,
			sampler.WithEquilibration(cfg.Pivot.Equilibration),
			sampler.WithStride(cfg.Pivot.Stride),
			sampler.WithMetrics(collector),
		)
		if err != nil {
			return s, fmt.Errorf("pivot: %w", err)
		}
	}
	return s, nil
}

func validateSweep(cfg SweepConfig) error {
	if cfg.MinLength < 0 {
		return fmt.Errorf("min length %d: %w", cfg.MinLength, sampler.ErrNegativeLength)
	}
	if cfg.Trials <= 0 {
		return fmt.Errorf("%d trials: %w", cfg.Trials, sampler.ErrNonPositiveTrials)
	}
	return nil
}

func validateSteps(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("%d steps: %w", steps, sampler.ErrNonPositiveSteps)
	}
	return nil
}

func runExact(cfg ExactConfig, writer *metrics.Writer) error {
	counts, err := enumerator.Counts(cfg.MaxLength)
	if err != nil {
		return err
	}

	records := make([]metrics.ExactRecord, len(counts))
	for l, count := range counts {
		records[l] = metrics.ExactRecord{Length: l, Count: count}
		log.Info().Msgf("exact: L = %d, c_L = %d", l, count)
	}

	err = writer.WriteExactCounts(records)
	if err != nil {
		return err
	}
	log.Info().Msg("stored exact counts")
	return nil
}

func runNaive(cfg SweepConfig, writer *metrics.Writer, rng *rand.Rand) error {
	records := []metrics.NaiveRecord{}
	for l := cfg.MinLength; l <= cfg.MaxLength; l++ {
		estimate, err := sampler.EstimateNaive(l, cfg.Trials, rng)
		if err != nil {
			return err
		}
		records = append(records, metrics.NaiveRecord{
			Length: l,
			Trials: estimate.Trials,
			Ratio:  estimate.Ratio,
			Count:  estimate.Count,
		})
		log.Info().Msgf("naive: L = %d, SAW ratio ≈ %.6f, estimated c_L ≈ %.2f", l, estimate.Ratio, estimate.Count)
	}

	err := writer.WriteNaiveRecords(records)
	if err != nil {
		return err
	}
	log.Info().Msg("stored naive records")
	return nil
}

func runRosenbluth(r *sampler.Rosenbluth, cfg SweepConfig, writer *metrics.Writer, rng *rand.Rand, collector metrics.Collector) ([]metrics.RunMetric, error) {
	records := []metrics.RosenbluthRecord{}
	runMetrics := []metrics.RunMetric{}
	for l := cfg.MinLength; l <= cfg.MaxLength; l++ {
		estimate, err := r.Estimate(l, cfg.Trials, rng)
		if err != nil {
			return runMetrics, err
		}
		runMetrics = append(runMetrics, collector.Complete())
		records = append(records, metrics.RosenbluthRecord{
			Length:       l,
			Trials:       estimate.Trials,
			MeanWeight:   estimate.MeanWeight,
			SuccessRatio: estimate.SuccessRatio,
			Mu:           estimate.Mu(),
		})
		log.Info().Msgf("rosenbluth: L = %d, estimated c_L ≈ %.2f, estimated mu ≈ %.6f, success ratio ≈ %.6f",
			l, estimate.MeanWeight, estimate.Mu(), estimate.SuccessRatio)
	}

	err := writer.WriteRosenbluthRecords(records)
	if err != nil {
		return runMetrics, err
	}
	log.Info().Msg("stored rosenbluth records")
	return runMetrics, nil
}

func runGrandCanonical(g *sampler.GrandCanonical, cfg GrandCanonicalConfig, writer *metrics.Writer, rng *rand.Rand, collector metrics.Collector) (metrics.RunMetric, error) {
	hist, err := g.Run(cfg.Steps, rng)
	if err != nil {
		return metrics.RunMetric{}, err
	}
	metric := collector.Complete()
	log.Info().Msgf("grand canonical: z = %g, mean length = %.2f, acceptance = %.4f, trapped = %d",
		g.Fugacity(), hist.Mean(), metric.AcceptanceRatio(), metric.Trapped)

	return metric, storeHistogram(writer, "grand_canonical", hist)
}

func runPriorChain(p *sampler.PriorChain, cfg PriorChainConfig, writer *metrics.Writer, rng *rand.Rand, collector metrics.Collector) (metrics.RunMetric, error) {
	hist, err := p.Run(cfg.Steps, rng)
	if err != nil {
		return metrics.RunMetric{}, err
	}
	metric := collector.Complete()
	log.Info().Msgf("prior chain: mu = %g, average SAW length = %.2f", cfg.Mu, hist.Mean())

	return metric, storeHistogram(writer, "prior_chain", hist)
}

func runPivot(p *sampler.Pivot, cfg PivotConfig, writer *metrics.Writer, rng *rand.Rand, collector metrics.Collector) (metrics.RunMetric, error) {
	result, err := p.Run(cfg.Steps, rng)
	if err != nil {
		return metrics.RunMetric{}, err
	}
	metric := collector.Complete()
	log.Info().Msgf("pivot: L = %d, acceptance ratio = %.4f, recorded = %d, <R^2> = %.2f",
		cfg.Length, result.AcceptanceRatio(), len(result.Configurations), result.MeanSquaredEndToEnd())

	err = writer.WritePivotRecords([]metrics.PivotRecord{{
		Length:              result.Length,
		Steps:               result.Steps,
		Configurations:      len(result.Configurations),
		AcceptanceRatio:     result.AcceptanceRatio(),
		MeanSquaredDistance: result.MeanSquaredEndToEnd(),
	}})
	if err != nil {
		return metric, err
	}
	log.Info().Msg("stored pivot records")
	return metric, nil
}

func storeHistogram(writer *metrics.Writer, name string, hist sampler.Histogram) error {
	lengths, probabilities := hist.Series()
	records := make([]metrics.HistogramRecord, len(lengths))
	for i, n := range lengths {
		records[i] = metrics.HistogramRecord{Length: n, Count: hist[n], Probability: probabilities[i]}
	}

	err := writer.WriteHistogram(name, records)
	if err != nil {
		return err
	}
	log.Info().Msgf("stored %s histogram", name)
	return nil
}
