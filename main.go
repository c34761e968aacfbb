package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"saw/experiments"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment config (defaults are used when empty)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := experiments.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = experiments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	level, err := cfg.Level()
	if err != nil {
		log.Warn().Err(err).Msg("using info log level")
	}
	zerolog.SetGlobalLevel(level)

	dir, err := experiments.Run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiments failed")
	}
	log.Info().Msgf("results stored in %s", dir)
}
