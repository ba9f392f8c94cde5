package agent

import (
	"context"
	"sync"
	"time"

	"inrow/game"

	"golang.org/x/exp/rand"
)

type random struct {
	name game.Player
	mu   sync.Mutex
	rng  *rand.Rand
}

// NewRandom returns an agent playing uniformly among the legal moves.
func NewRandom(name game.Player) Agent {
	return NewRandomWithSeed(name, uint64(time.Now().UnixNano()))
}

// NewRandomWithSeed returns a random agent with a reproducible move sequence.
func NewRandomWithSeed(name game.Player, seed uint64) Agent {
	return &random{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (a *random) Name() game.Player { return a.name }

func (a *random) ChooseAction(_ context.Context, env game.Environment) (int, error) {
	moves := env.AvailableMoves(a.name)
	if len(moves) == 0 {
		return game.NoMove, nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return moves[a.rng.Intn(len(moves))], nil
}
