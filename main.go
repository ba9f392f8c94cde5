package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"inrow/experiments"
	"inrow/experiments/metrics"
	"inrow/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML tournament config (defaults to the built-in agents)")
	out := flag.String("out", meta.OUTPUT_DIR, "Directory for CSV results")
	experiment := flag.String("experiment", "tournament", "Experiment to run: tournament or throughput")
	debug := flag.Bool("debug", false, "Log every search")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *experiment {
	case "tournament":
		runTournament(ctx, *configPath, *out)
	case "throughput":
		runThroughput(ctx, *out)
	default:
		log.Fatal().Str("experiment", *experiment).Msg("unknown experiment")
	}
}

func runTournament(ctx context.Context, configPath, out string) {
	config := experiments.DefaultConfig()
	if configPath != "" {
		var err error
		config, err = experiments.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
		}
	}

	results, err := experiments.RunTournament(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Msg("tournament failed")
	}

	dir, err := experiments.WriteResults(out, config, results)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store results")
	}
	log.Info().Str("dir", dir).Msg("done")
}

func runThroughput(ctx context.Context, out string) {
	records, err := experiments.RunThroughputExperiment(ctx, experiments.DefaultThroughputConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("throughput experiment failed")
	}

	writer, err := metrics.NewWriter(out, "throughput")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create writer")
	}
	if err := writer.WriteThroughputRecords(records); err != nil {
		log.Fatal().Err(err).Msg("failed to store throughput records")
	}
	log.Info().Str("dir", writer.Dir()).Msg("done")
}
