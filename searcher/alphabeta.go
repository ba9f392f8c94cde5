package searcher

import (
	"context"
	"math"

	"inrow/game"
)

// alphabeta is minimax restricted to the window (alpha, beta). A returned value at or
// below alpha is an upper bound of the true value, one at or above beta a lower bound;
// anything in between is exact.
func (s *Searcher) alphabeta(ctx context.Context, env game.Environment, depth int, alpha, beta float64) (float64, error) {
	isLeaf, err := s.enter(ctx, env, depth)
	if err != nil {
		return 0, err
	}
	player := env.CurrentPlayer()
	moves := env.AvailableMoves(player)
	if isLeaf || len(moves) == 0 {
		return s.leaf(env), nil
	}

	if player == s.name {
		best := math.Inf(-1)
		for _, move := range moves {
			child, err := s.play(env, player, move)
			if err != nil {
				return 0, err
			}
			v, err := s.alphabeta(ctx, child, depth-1, alpha, beta)
			if err != nil {
				return 0, err
			}
			best = max(best, v)
			if best >= beta {
				s.metrics.AddCutoff()
				break
			}
			alpha = max(alpha, best)
		}
		return best, nil
	}

	best := math.Inf(1)
	for _, move := range moves {
		child, err := s.play(env, player, move)
		if err != nil {
			return 0, err
		}
		v, err := s.alphabeta(ctx, child, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		best = min(best, v)
		if best <= alpha {
			s.metrics.AddCutoff()
			break
		}
		beta = min(beta, best)
	}
	return best, nil
}
