package engine

import (
	"errors"

	"inrow/experiments/metrics"
)

// MaxIllegalMoves is the default number of consecutive rejected moves an agent may make
// before the match is abandoned.
const MaxIllegalMoves = 3

var (
	ErrAgentMismatch       = errors.New("engine: agents do not match the game's players")
	ErrTooManyIllegalMoves = errors.New("engine: too many illegal moves")
)

// Result of a finished match. Statuses are indexed by seat; a timeout is recorded as a
// loss for the player that ran out of time and a win for the other.
type Result struct {
	metrics.GameMetric
	Moves []metrics.MoveMetric
}

type Option func(e *Engine)

func WithMaxIllegalMoves(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIllegalMoves = n
		}
	}
}
