package metrics

import (
	"time"

	"inrow/game"
	"inrow/searcher"
)

// AgentConfig describes one tournament entrant.
type AgentConfig struct {
	ID         int     `yaml:"-"`
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"` // random, minimax or alphabeta
	Depth      int     `yaml:"depth"`
	Heuristic  string  `yaml:"heuristic"`
	Weight     float64 `yaml:"weight"` // Used when Heuristic is empty
	Goroutines int     `yaml:"goroutines"`
	Seed       uint64  `yaml:"seed"`
}

type MoveMetric struct {
	Step    int
	Player  game.Player
	Move    int
	Elapsed time.Duration // Wall time of the agent's decision
	searcher.SearchMetrics
}

type GameMetric struct {
	Players    [2]game.Player // Players[0] starts
	Statuses   [2]game.Status
	Winner     game.Player // Empty on a draw
	TimedOut   game.Player // Empty unless a player forfeited on time
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// GameTime returns the match duration in seconds, or the timeout marker of the seat
// that forfeited.
func (m GameMetric) GameTime() string {
	switch m.TimedOut {
	case "":
		return formatSeconds(m.Duration)
	case m.Players[0]:
		return "Player1 Timeout"
	default:
		return "Player2 Timeout"
	}
}

// Collector gathers the metrics of a single game.
type Collector interface {
	Start(players [2]game.Player)
	AddMove(move MoveMetric)
	Complete(statuses [2]game.Status, timedOut game.Player) (GameMetric, []MoveMetric)
}

type collector struct {
	game  GameMetric
	moves []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(players [2]game.Player) {
	c.game = GameMetric{Players: players, StartTime: time.Now()}
	c.moves = nil
}

func (c *collector) AddMove(move MoveMetric) {
	move.Step = len(c.moves) + 1
	c.moves = append(c.moves, move)
}

func (c *collector) Complete(statuses [2]game.Status, timedOut game.Player) (GameMetric, []MoveMetric) {
	c.game.EndTime = time.Now()
	c.game.Duration = c.game.EndTime.Sub(c.game.StartTime)
	c.game.Statuses = statuses
	c.game.TimedOut = timedOut
	c.game.TotalMoves = len(c.moves)
	for i, status := range statuses {
		if status == game.Won {
			c.game.Winner = c.game.Players[i]
		}
	}
	return c.game, c.moves
}
