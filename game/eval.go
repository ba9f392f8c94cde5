package game

import (
	"fmt"
	"math"
)

// Strategy weights for the in-row heuristic. A positive weight plays passively by
// amplifying favorable positions, a negative weight plays aggressively by amplifying
// threats against us.
const (
	PassiveWeight    = 1.5
	AggressiveWeight = -1.5
	NeutralWeight    = 1.0
)

var axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, -1}, // anti-diagonal
	{1, 1},  // diagonal
}

// Heuristic returns an in-row evaluation shaped by weight. A zero weight only scores
// terminal positions.
func Heuristic(weight float64) Evaluate {
	return func(env Environment, player Player) float64 {
		return evaluateInRow(env, player, weight)
	}
}

func Passive(env Environment, player Player) float64 {
	return evaluateInRow(env, player, PassiveWeight)
}

func Aggressive(env Environment, player Player) float64 {
	return evaluateInRow(env, player, AggressiveWeight)
}

func Neutral(env Environment, player Player) float64 {
	return evaluateInRow(env, player, NeutralWeight)
}

func Zero(env Environment, player Player) float64 {
	return evaluateInRow(env, player, 0)
}

var heuristics = map[string]Evaluate{
	"passive":    Passive,
	"aggressive": Aggressive,
	"neutral":    Neutral,
	"zero":       Zero,
}

// HeuristicByName looks up one of the named strategies.
func HeuristicByName(name string) (Evaluate, error) {
	fn, ok := heuristics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
	return fn, nil
}

// evaluateInRow scores every empty cell by the runs touching it along each axis. A run
// of n own symbols next to an empty cell is worth n^5, opposing runs count negatively,
// and runs meeting on both sides of the cell are summed before raising to the power.
func evaluateInRow(env Environment, player Player, weight float64) float64 {
	if env.IsTerminalState() {
		switch env.PlayerStatus(player) {
		case Won:
			return math.Inf(1)
		case Lost:
			return math.Inf(-1)
		default:
			return 0
		}
	}
	if weight == 0 {
		return 0
	}

	gs, ok := env.(*InRow)
	if !ok {
		panic("unexpected environment type")
	}
	b := gs.board
	own := gs.Symbol(player)

	score := 0.0
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			if b.At(row, col) != Empty {
				continue
			}
			for _, axis := range axes {
				forward := countRun(b, row, col, axis[0], axis[1], gs.k, own)
				backward := countRun(b, row, col, -axis[0], -axis[1], gs.k, own)
				if forward*backward > 0 {
					score += pow5(forward + backward)
				} else {
					score += pow5(forward) + pow5(backward)
				}
			}
		}
	}

	switch {
	case weight > 0 && score > 0:
		return score * weight
	case weight < 0 && score < 0:
		return score * -weight
	default:
		return score
	}
}

// countRun counts the same-owner symbols following (row, col) in direction (dr, dc), at
// most k-1 of them. Own symbols count positive, opposing symbols negative.
func countRun(b *Board, row, col, dr, dc, k int, own Cell) int {
	counter := 0
	for step := 1; step < k; step++ {
		r, c := row+dr*step, col+dc*step
		if r < 0 || r >= b.height || c < 0 || c >= b.width {
			break
		}
		s := b.At(r, c)
		if s == Empty {
			break
		}
		count := -1
		if s == own {
			count = 1
		}
		if step > 1 && counter*count <= 0 {
			break
		}
		counter += count
	}
	return counter
}

func pow5(n int) float64 {
	x := float64(n)
	return x * x * x * x * x
}
