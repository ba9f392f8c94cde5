package game

import "errors"

var (
	ErrInvalidDimensions = errors.New("game: board height and width must be positive")
	ErrInvalidRunLength  = errors.New("game: run length must be positive")
	ErrSamePlayers       = errors.New("game: players must be distinct")

	// ErrIllegalMove is wrapped by every rejected move
	ErrIllegalMove      = errors.New("game: illegal move")
	ErrColumnFull       = errors.New("column is full")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrWrongTurn        = errors.New("not the player's turn")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrGameOver         = errors.New("game is over - no moves allowed")

	ErrUnknownHeuristic = errors.New("game: unknown heuristic")
)
