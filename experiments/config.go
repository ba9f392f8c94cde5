package experiments

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"inrow/agent"
	"inrow/experiments/metrics"
	"inrow/game"
	"inrow/meta"
	"inrow/searcher"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoAgents       = errors.New("experiments: need at least two agents")
	ErrNoTimeouts     = errors.New("experiments: need at least one timeout")
	ErrDuplicateAgent = errors.New("experiments: duplicate agent name")
	ErrUnknownKind    = errors.New("experiments: unknown agent kind")
)

const (
	KindRandom    = "random"
	KindMinimax   = "minimax"
	KindAlphaBeta = "alphabeta"
)

type BoardConfig struct {
	Height    int `yaml:"height"`
	Width     int `yaml:"width"`
	RunLength int `yaml:"run_length"`
}

type Config struct {
	Board    BoardConfig           `yaml:"board"`
	Timeouts []time.Duration       `yaml:"timeouts"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
}

// DefaultConfig is a random agent plus one minimax agent per depth and heuristic,
// played on a 6x7 connect four board.
func DefaultConfig() Config {
	agents := []metrics.AgentConfig{{Name: "random", Kind: KindRandom}}
	for _, depth := range meta.DEPTHS {
		for _, heuristic := range meta.HEURISTICS {
			agents = append(agents, metrics.AgentConfig{
				Name:       fmt.Sprintf("minimax, depth = %d, heuristic = %s", depth, heuristic),
				Kind:       KindMinimax,
				Depth:      depth,
				Heuristic:  heuristic,
				Goroutines: meta.GO_ROUTINES,
			})
		}
	}
	config := Config{
		Board:    BoardConfig{Height: meta.BOARD_HEIGHT, Width: meta.BOARD_WIDTH, RunLength: meta.RUN_LENGTH},
		Timeouts: append([]time.Duration(nil), meta.TIMEOUTS...),
		Agents:   agents,
	}
	config.assignIDs()
	return config
}

// LoadConfig reads a YAML tournament config from path. Omitted board settings and
// timeouts fall back to the defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return ReadConfig(f)
}

func ReadConfig(r io.Reader) (Config, error) {
	defaults := DefaultConfig()
	config := Config{Board: defaults.Board}
	if err := yaml.NewDecoder(r).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if len(config.Timeouts) == 0 {
		config.Timeouts = defaults.Timeouts
	}
	if len(config.Agents) == 0 {
		config.Agents = defaults.Agents
	}
	config.assignIDs()
	return config, config.Validate()
}

func (c *Config) assignIDs() {
	for i := range c.Agents {
		c.Agents[i].ID = i + 1
	}
}

func (c Config) Validate() error {
	if len(c.Agents) < 2 {
		return ErrNoAgents
	}
	if len(c.Timeouts) == 0 {
		return ErrNoTimeouts
	}
	names := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if names[a.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateAgent, a.Name)
		}
		names[a.Name] = true
		if _, err := NewAgent(a, 0); err != nil {
			return err
		}
	}
	if _, err := c.newEnv(c.Agents[0], c.Agents[1]); err != nil {
		return err
	}
	return nil
}

func (c Config) newEnv(player1, player2 metrics.AgentConfig) (*game.InRow, error) {
	var options []game.EnvOption
	if c.Board.RunLength != 0 {
		options = append(options, game.WithRunLength(c.Board.RunLength))
	}
	return game.NewInRow(game.Player(player1.Name), game.Player(player2.Name), c.Board.Height, c.Board.Width, options...)
}

// NewAgent builds a fresh agent for one match. Searchers are given timeout as their
// per-move budget.
func NewAgent(config metrics.AgentConfig, timeout time.Duration) (agent.Agent, error) {
	name := game.Player(config.Name)
	if config.Kind == KindRandom {
		if config.Seed != 0 {
			return agent.NewRandomWithSeed(name, config.Seed), nil
		}
		return agent.NewRandom(name), nil
	}

	var algorithm searcher.Algorithm
	switch config.Kind {
	case KindMinimax:
		algorithm = searcher.Minimax
	case KindAlphaBeta:
		algorithm = searcher.AlphaBeta
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, config.Kind)
	}

	evaluate := game.Heuristic(config.Weight)
	if config.Heuristic != "" {
		var err error
		evaluate, err = game.HeuristicByName(config.Heuristic)
		if err != nil {
			return nil, err
		}
	}

	return searcher.New(name, algorithm,
		searcher.WithDepth(config.Depth),
		searcher.WithTimeout(timeout),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	), nil
}
