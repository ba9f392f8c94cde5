package searcher

import (
	"errors"
	"time"
)

// Defaults for agents built without the corresponding option
const (
	DefaultDepth   = 3
	DefaultTimeout = 10 * time.Second
)

var ErrSearchInProgress = errors.New("searcher: a search is already running on this agent")

type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
)

func (a Algorithm) String() string {
	if a == AlphaBeta {
		return "alphabeta"
	}
	return "minimax"
}

// State tracks the lifecycle of the latest search of an agent.
type State int32

const (
	Idle State = iota
	Searching
	Done
	TimedOut
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Done:
		return "done"
	case TimedOut:
		return "timed out"
	default:
		return "idle"
	}
}
