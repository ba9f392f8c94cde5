package searcher

import (
	"context"
	"math"

	"inrow/game"
)

// minimax returns the value of env for the agent, searching depth more plies. Layers
// where the agent moves maximize, the opponent's layers minimize.
func (s *Searcher) minimax(ctx context.Context, env game.Environment, depth int) (float64, error) {
	isLeaf, err := s.enter(ctx, env, depth)
	if err != nil {
		return 0, err
	}
	player := env.CurrentPlayer()
	moves := env.AvailableMoves(player)
	if isLeaf || len(moves) == 0 {
		return s.leaf(env), nil
	}

	maximizing := player == s.name
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, move := range moves {
		child, err := s.play(env, player, move)
		if err != nil {
			return 0, err
		}
		v, err := s.minimax(ctx, child, depth-1)
		if err != nil {
			return 0, err
		}
		if maximizing {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}
	return best, nil
}
