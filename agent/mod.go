package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inrow/game"
)

// ErrSearchTimeout matches every PlayerTimeout through errors.Is.
var ErrSearchTimeout = errors.New("search timed out")

type Agent interface {
	// Name identifies the agent in the environment it plays
	Name() game.Player
	// ChooseAction returns the column to play, or game.NoMove when the agent has no legal
	// move. A search running out of time returns a *PlayerTimeout and no move.
	ChooseAction(ctx context.Context, env game.Environment) (int, error)
}

// PlayerTimeout reports the agent that exceeded its time budget. The match is forfeited
// by that player; the move must not be retried.
type PlayerTimeout struct {
	Player  game.Player
	Timeout time.Duration
}

func (e *PlayerTimeout) Error() string {
	return fmt.Sprintf("player %q timed out after %v", e.Player, e.Timeout)
}

func (e *PlayerTimeout) Is(target error) bool {
	return target == ErrSearchTimeout
}
