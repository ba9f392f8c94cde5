package experiments

import (
	"context"
	"fmt"
	"time"

	"inrow/agent"
	"inrow/engine"
	"inrow/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Results of a tournament, in play order.
type Results struct {
	Matches []metrics.MatchRecord
	Moves   []metrics.MoveRecord
}

// RunTournament plays every ordered pair of distinct agents under every timeout. Once a
// pair has produced a timeout, its remaining timeouts are skipped.
func RunTournament(ctx context.Context, config Config) (Results, error) {
	if err := config.Validate(); err != nil {
		return Results{}, err
	}

	results := Results{}
	timedOut := map[[2]int]bool{}
	count := 0

	log.Info().Msgf("starting tournament with %d agents and %d timeouts...", len(config.Agents), len(config.Timeouts))

	for _, config1 := range config.Agents {
		for _, config2 := range config.Agents {
			pair := [2]int{config1.ID, config2.ID}
			for _, timeout := range config.Timeouts {
				if config1.ID == config2.ID || timedOut[pair] {
					continue
				}

				result, err := runMatch(ctx, config, config1, config2, timeout)
				if err != nil {
					return results, fmt.Errorf("match %q vs %q with timeout %v: %w", config1.Name, config2.Name, timeout, err)
				}
				if result.TimedOut != "" {
					timedOut[pair] = true
				}

				count++
				results.Matches = append(results.Matches, metrics.MatchRecord{
					ID:         count,
					Agent1:     config1.ID,
					Agent2:     config2.ID,
					Timeout:    timeout,
					GameMetric: result.GameMetric,
				})
				for _, mm := range result.Moves {
					results.Moves = append(results.Moves, metrics.MoveRecord{
						Match:      count,
						MoveMetric: mm,
					})
				}

				log.Info().
					Int("match", count).
					Str("player1", config1.Name).
					Str("player2", config2.Name).
					Dur("timeout", timeout).
					Str("game_time", result.GameTime()).
					Int("actions", result.TotalMoves).
					Str("outcome", outcome(result.GameMetric)).
					Msg("match completed")
			}
		}
	}

	log.Info().Msgf("completed tournament with %d matches", count)
	return results, nil
}

// WriteResults stores the agent configs and results as CSV files under a new
// timestamped directory of root, which it returns.
func WriteResults(root string, config Config, results Results) (string, error) {
	writer, err := metrics.NewWriter(root, "tournament")
	if err != nil {
		return "", fmt.Errorf("failed to create tournament writer: %w", err)
	}

	err = writer.WriteAgentConfigs(config.Agents)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteMatchRecords(results.Matches)
	if err != nil {
		return "", fmt.Errorf("failed to write match records: %w", err)
	}
	log.Info().Msg("stored match records")

	err = writer.WriteMoveRecords(results.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runMatch plays a single game between fresh agents built from the two configs.
func runMatch(ctx context.Context, config Config, config1, config2 metrics.AgentConfig, timeout time.Duration) (engine.Result, error) {
	env, err := config.newEnv(config1, config2)
	if err != nil {
		return engine.Result{}, err
	}
	agent1, err := NewAgent(config1, timeout)
	if err != nil {
		return engine.Result{}, err
	}
	agent2, err := NewAgent(config2, timeout)
	if err != nil {
		return engine.Result{}, err
	}

	e, err := engine.New(env, []agent.Agent{agent1, agent2})
	if err != nil {
		return engine.Result{}, err
	}
	return e.Run(ctx)
}

func outcome(g metrics.GameMetric) string {
	switch {
	case g.Statuses[0] > 0:
		return "player 1 won"
	case g.Statuses[1] > 0:
		return "player 2 won"
	default:
		return "draw"
	}
}
