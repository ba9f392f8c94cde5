package game

// Player identifies a seat in a game. It is independent of the symbol drawn on the board.
type Player string

// NoMove is returned by agents that have no legal move to play.
const NoMove = -1

type Status int

const (
	Lost Status = -1
	None Status = 0
	Won  Status = 1
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "none"
	}
}

// Environment is the contract between a two-player grid game and the agents playing it.
// Search agents explore hypothetical futures on Copy() and never mutate the live game.
type Environment interface {
	// Reset restores the initial state and returns its observation
	Reset() *Board
	// ApplyAction plays move as player. On failure the environment is left untouched and
	// the error wraps ErrIllegalMove.
	ApplyAction(player Player, move int) (*Board, error)
	Render() string
	// AvailableMoves returns the playable columns for player in ascending order
	AvailableMoves(player Player) []int
	IsTerminalState() bool
	PlayerStatus(player Player) Status
	Copy() Environment
	CurrentPlayer() Player
	Players() [2]Player
}

// Evaluate scores env from player's perspective. Terminal positions must score +Inf for a
// win, -Inf for a loss and 0 for a draw.
type Evaluate func(env Environment, player Player) float64
