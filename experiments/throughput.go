package experiments

import (
	"context"
	"fmt"
	"time"

	"inrow/experiments/metrics"
	"inrow/game"
	"inrow/meta"
	"inrow/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type ThroughputConfig struct {
	Depth      int
	Goroutines []int
	Positions  int // Random openings searched per goroutine count
	Plies      int // Length of each random opening
	Seed       uint64
}

func DefaultThroughputConfig() ThroughputConfig {
	return ThroughputConfig{
		Depth:      5,
		Goroutines: []int{1, 2, 4, 8},
		Positions:  10,
		Plies:      6,
		Seed:       1,
	}
}

// RunThroughputExperiment searches the same random openings with an alpha-beta agent for
// each goroutine count and reports how many nodes per second each setting visits.
func RunThroughputExperiment(ctx context.Context, config ThroughputConfig) ([]metrics.ThroughputRecord, error) {
	positions, err := randomOpenings(config)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("starting throughput experiment on %d positions...", len(positions))

	records := []metrics.ThroughputRecord{}
	for _, goroutines := range config.Goroutines {
		record := metrics.ThroughputRecord{Goroutines: goroutines, Depth: config.Depth}
		for _, env := range positions {
			s := searcher.NewAlphaBeta(env.CurrentPlayer(),
				searcher.WithDepth(config.Depth),
				searcher.WithTimeout(time.Hour),
				searcher.WithEvaluationFn(game.Neutral),
				searcher.WithGoroutines(goroutines),
				searcher.WithMetrics(),
			)
			if _, err := s.ChooseAction(ctx, env); err != nil {
				return nil, fmt.Errorf("throughput search with %d goroutines: %w", goroutines, err)
			}
			m := s.LastMetrics()
			record.Positions++
			record.Nodes += m.Nodes
			record.Duration += m.Duration
		}
		records = append(records, record)

		log.Info().
			Int("goroutines", goroutines).
			Int64("nodes", record.Nodes).
			Float64("nodes_per_second", record.NodesPerSecond()).
			Msg("completed goroutine setting")
	}

	log.Info().Msg("completed throughput experiment")
	return records, nil
}

func randomOpenings(config ThroughputConfig) ([]*game.InRow, error) {
	r := rand.New(rand.NewSource(config.Seed))
	positions := make([]*game.InRow, 0, config.Positions)
	for len(positions) < config.Positions {
		env, err := game.NewInRow("player1", "player2", meta.BOARD_HEIGHT, meta.BOARD_WIDTH)
		if err != nil {
			return nil, err
		}
		for i := 0; i < config.Plies && !env.IsTerminalState(); i++ {
			moves := env.AvailableMoves(env.CurrentPlayer())
			if _, err := env.ApplyAction(env.CurrentPlayer(), moves[r.Intn(len(moves))]); err != nil {
				return nil, err
			}
		}
		if !env.IsTerminalState() {
			positions = append(positions, env)
		}
	}
	return positions, nil
}
