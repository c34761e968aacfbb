package experiments

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"saw/meta"
)

// Config selects which estimators run and with which parameters. A section
// left out of the YAML file (or with Enabled false) is skipped.
type Config struct {
	Seed           uint64               `yaml:"seed"`
	OutputDir      string               `yaml:"output_dir"`
	LogLevel       string               `yaml:"log_level"`
	Exact          ExactConfig          `yaml:"exact"`
	Naive          SweepConfig          `yaml:"naive"`
	Rosenbluth     SweepConfig          `yaml:"rosenbluth"`
	GrandCanonical GrandCanonicalConfig `yaml:"grand_canonical"`
	PriorChain     PriorChainConfig     `yaml:"prior_chain"`
	Pivot          PivotConfig          `yaml:"pivot"`
}

type ExactConfig struct {
	Enabled   bool `yaml:"enabled"`
	MaxLength int  `yaml:"max_length"`
}

// SweepConfig runs an estimator for every length in [MinLength, MaxLength].
type SweepConfig struct {
	Enabled    bool `yaml:"enabled"`
	MinLength  int  `yaml:"min_length"`
	MaxLength  int  `yaml:"max_length"`
	Trials     int  `yaml:"trials"`
	Goroutines int  `yaml:"goroutines"` // Rosenbluth only
}

type GrandCanonicalConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Steps           int     `yaml:"steps"`
	Fugacity        float64 `yaml:"fugacity"`
	Omega           float64 `yaml:"omega"`
	MaxDeltaN       int     `yaml:"max_delta_n"`
	GrowthThreshold int     `yaml:"growth_threshold"`
}

type PriorChainConfig struct {
	Enabled bool    `yaml:"enabled"`
	Steps   int     `yaml:"steps"`
	Mu      float64 `yaml:"mu"`
}

type PivotConfig struct {
	Enabled       bool `yaml:"enabled"`
	Length        int  `yaml:"length"`
	Steps         int  `yaml:"steps"`
	Equilibration int  `yaml:"equilibration"`
	Stride        int  `yaml:"stride"`
}

// DefaultConfig mirrors the parameters of the classic reference runs.
func DefaultConfig() Config {
	return Config{
		Seed:      1,
		OutputDir: "results",
		LogLevel:  "info",
		Exact:     ExactConfig{Enabled: true, MaxLength: 14},
		Naive:     SweepConfig{Enabled: true, MinLength: 1, MaxLength: 20, Trials: meta.TRIALS},
		Rosenbluth: SweepConfig{
			Enabled:    true,
			MinLength:  1,
			MaxLength:  30,
			Trials:     meta.TRIALS,
			Goroutines: 1,
		},
		GrandCanonical: GrandCanonicalConfig{
			Enabled:         true,
			Steps:           1000000,
			Fugacity:        meta.FUGACITY,
			Omega:           1.0,
			MaxDeltaN:       meta.MAX_DELTA_N,
			GrowthThreshold: meta.GROWTH_THRESHOLD,
		},
		PriorChain: PriorChainConfig{Enabled: true, Steps: 100000, Mu: meta.CONNECTIVE_CONSTANT},
		Pivot: PivotConfig{
			Enabled:       true,
			Length:        100,
			Steps:         100000,
			Equilibration: meta.EQUILIBRATION,
			Stride:        meta.STRIDE,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig, so a file only needs
// the fields it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Level parses LogLevel. An empty or unknown name yields info together with
// an error describing the problem.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q: %w", c.LogLevel, err)
	}
	if level == zerolog.NoLevel {
		return zerolog.InfoLevel, errors.New("empty log level")
	}
	return level, nil
}
