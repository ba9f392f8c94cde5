package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const DefaultRunLength = 4

var symbolStyles = map[Cell]lipgloss.Style{
	Symbol1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	Symbol2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
}

var symbolMarks = map[Cell]string{
	Empty:   ".",
	Symbol1: "X",
	Symbol2: "O",
}

type EnvOption func(env *InRow)

// WithRunLength sets how many aligned symbols win the game.
func WithRunLength(k int) EnvOption {
	return func(env *InRow) {
		env.k = k
	}
}

// WithStrictTurns controls whether moves out of turn are rejected.
func WithStrictTurns(strict bool) EnvOption {
	return func(env *InRow) {
		env.strict = strict
	}
}

// InRow is a k-in-a-row game with gravity drop, e.g. connect four on a 6x7 board.
type InRow struct {
	board   *Board
	k       int
	strict  bool
	players [2]Player
	current int  // Index into players
	winner  Cell // Outcome of the last ply, refreshed on every applied move
}

// NewInRow creates a game between p1 (moving first) and p2.
func NewInRow(p1, p2 Player, height, width int, options ...EnvOption) (*InRow, error) {
	if p1 == p2 {
		return nil, fmt.Errorf("%w: %q", ErrSamePlayers, p1)
	}
	board, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	env := &InRow{ // Default values
		board:   board,
		k:       DefaultRunLength,
		strict:  true,
		players: [2]Player{p1, p2},
	}
	for _, option := range options {
		option(env)
	}
	if env.k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRunLength, env.k)
	}
	return env, nil
}

func (e *InRow) Reset() *Board {
	e.board.Clear()
	e.current = 0
	e.winner = Empty
	return e.board.Clone()
}

func (e *InRow) ApplyAction(player Player, move int) (*Board, error) {
	seat := e.seat(player)
	if seat < 0 {
		return nil, fmt.Errorf("%w: %w %q", ErrIllegalMove, ErrUnknownPlayer, player)
	}
	if e.IsTerminalState() {
		return nil, fmt.Errorf("%w: %w", ErrIllegalMove, ErrGameOver)
	}
	if e.strict && seat != e.current {
		return nil, fmt.Errorf("%w: %w %q", ErrIllegalMove, ErrWrongTurn, player)
	}
	// Drop validates the column before touching any cell
	if _, _, err := e.board.Drop(move, symbolOf(seat)); err != nil {
		return nil, fmt.Errorf("%w: %w %d", ErrIllegalMove, err, move)
	}

	e.winner = Winner(e.board, e.k)
	e.current = 1 - seat
	return e.board.Clone(), nil
}

// Render draws the board top row first, followed by the column indices.
func (e *InRow) Render() string {
	var sb strings.Builder
	for row := 0; row < e.board.height; row++ {
		marks := make([]string, e.board.width)
		for col := range marks {
			cell := e.board.At(row, col)
			marks[col] = symbolMarks[cell]
			if style, ok := symbolStyles[cell]; ok {
				marks[col] = style.Render(marks[col])
			}
		}
		sb.WriteString(strings.Join(marks, " "))
		sb.WriteByte('\n')
	}
	footer := make([]string, e.board.width)
	for col := range footer {
		footer[col] = strconv.Itoa(col % 10)
	}
	sb.WriteString(strings.Join(footer, " "))
	return sb.String()
}

func (e *InRow) AvailableMoves(player Player) []int {
	seat := e.seat(player)
	if seat < 0 || e.IsTerminalState() {
		return []int{}
	}
	if e.strict && seat != e.current {
		return []int{}
	}
	moves := make([]int, 0, e.board.width)
	for col := 0; col < e.board.width; col++ {
		if !e.board.IsColumnFull(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

func (e *InRow) IsTerminalState() bool {
	return e.winner != Empty || e.board.IsFull()
}

// PlayerStatus returns None for a player not seated in the game.
func (e *InRow) PlayerStatus(player Player) Status {
	if e.seat(player) < 0 {
		return None
	}
	return statusOf(e.winner, e.Symbol(player))
}

func (e *InRow) Copy() Environment {
	return e.clone()
}

func (e *InRow) clone() *InRow {
	return &InRow{
		board:   e.board.Clone(),
		k:       e.k,
		strict:  e.strict,
		players: e.players,
		current: e.current,
		winner:  e.winner,
	}
}

func (e *InRow) CurrentPlayer() Player { return e.players[e.current] }
func (e *InRow) Players() [2]Player    { return e.players }
func (e *InRow) RunLength() int        { return e.k }

// Board exposes the live board. Callers must not mutate it.
func (e *InRow) Board() *Board { return e.board }

// Symbol returns the cell drawn by player, or Empty for a stranger.
func (e *InRow) Symbol(player Player) Cell {
	seat := e.seat(player)
	if seat < 0 {
		return Empty
	}
	return symbolOf(seat)
}

func (e *InRow) seat(player Player) int {
	for i, p := range e.players {
		if p == player {
			return i
		}
	}
	return -1
}

func symbolOf(seat int) Cell {
	return Cell(seat + 1)
}
