package searcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"inrow/agent"
	"inrow/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const (
	first  game.Player = "first"
	second game.Player = "second"
)

func newGame(t *testing.T, moves ...int) *game.InRow {
	t.Helper()
	env, err := game.NewInRow(first, second, 6, 7)
	require.NoError(t, err)
	for i, move := range moves {
		_, err := env.ApplyAction(env.CurrentPlayer(), move)
		require.NoError(t, err, "Setup move %d (column %d) should be legal", i, move)
	}
	return env
}

// randomMidGame plays random moves without ending the game.
func randomMidGame(t *testing.T, r *rand.Rand, plies int) *game.InRow {
	t.Helper()
	for {
		env := newGame(t)
		for i := 0; i < plies && !env.IsTerminalState(); i++ {
			moves := env.AvailableMoves(env.CurrentPlayer())
			_, err := env.ApplyAction(env.CurrentPlayer(), moves[r.Intn(len(moves))])
			require.NoError(t, err)
		}
		if !env.IsTerminalState() {
			return env
		}
	}
}

func TestNewSearcher(t *testing.T) {
	t.Run("applying defaults", func(t *testing.T) {
		s := NewMinimax(first)

		require.Equal(t, first, s.Name())
		require.Equal(t, Minimax, s.Algorithm())
		require.Equal(t, DefaultDepth, s.Depth())
		require.Equal(t, DefaultTimeout, s.Timeout())
		require.Equal(t, Idle, s.State())
		require.Equal(t, "first(minimax)", s.String())
	})

	t.Run("ignoring invalid options", func(t *testing.T) {
		s := NewAlphaBeta(first, WithDepth(0), WithTimeout(-time.Second), WithEvaluationFn(nil), WithGoroutines(0))

		require.Equal(t, DefaultDepth, s.Depth())
		require.Equal(t, DefaultTimeout, s.Timeout())
		require.NotNil(t, s.Evaluate())
	})
}

func TestChooseActionWinningMove(t *testing.T) {
	// first holds columns 0-2 of the bottom row and wins in column 3
	env := newGame(t, 0, 6, 1, 6, 2, 5)

	for _, s := range []*Searcher{
		NewMinimax(first, WithDepth(1), WithEvaluationFn(game.Zero)),
		NewAlphaBeta(first, WithDepth(1), WithEvaluationFn(game.Zero)),
		NewMinimax(first, WithDepth(3), WithEvaluationFn(game.Neutral)),
		NewAlphaBeta(first, WithDepth(3), WithEvaluationFn(game.Aggressive)),
	} {
		move, err := s.ChooseAction(context.Background(), env)

		require.NoError(t, err)
		require.Equal(t, 3, move, "%s should complete the row", s)
		require.Equal(t, Done, s.State())
	}
	require.Equal(t, first, env.CurrentPlayer(), "Search should not mutate the live game")
	require.False(t, env.IsTerminalState(), "Search should not mutate the live game")
}

func TestChooseActionBlocksThreat(t *testing.T) {
	// first stacks three symbols in column 3; second must answer in column 3
	env := newGame(t, 3, 6, 3, 5, 3)

	t.Run("one ply only sees its own moves", func(t *testing.T) {
		move, err := NewMinimax(second, WithDepth(1)).ChooseAction(context.Background(), env)

		require.NoError(t, err)
		require.Equal(t, 0, move, "Equal values should resolve to the first column")
	})

	t.Run("two plies see the opponent's reply", func(t *testing.T) {
		for _, s := range []*Searcher{NewMinimax(second, WithDepth(2)), NewAlphaBeta(second, WithDepth(2))} {
			move, err := s.ChooseAction(context.Background(), env)

			require.NoError(t, err)
			require.Equal(t, 3, move, "%s should block column 3", s)
		}
	})
}

func TestChooseActionNoMove(t *testing.T) {
	env := newGame(t)

	move, err := NewAlphaBeta(second).ChooseAction(context.Background(), env)

	require.NoError(t, err)
	require.Equal(t, game.NoMove, move, "Agent should not move out of turn")
}

func TestChooseActionTimeout(t *testing.T) {
	t.Run("zero timeout fails on the first call", func(t *testing.T) {
		for _, s := range []*Searcher{
			NewMinimax(first, WithTimeout(0)),
			NewAlphaBeta(first, WithTimeout(0)),
			NewAlphaBeta(first, WithTimeout(0), WithGoroutines(4)),
		} {
			move, err := s.ChooseAction(context.Background(), newGame(t))

			require.Equal(t, game.NoMove, move, "Timed out search should not produce a move")
			require.ErrorIs(t, err, agent.ErrSearchTimeout)
			var timeout *agent.PlayerTimeout
			require.True(t, errors.As(err, &timeout))
			require.Equal(t, first, timeout.Player, "Timeout should name the searching agent")
			require.Equal(t, TimedOut, s.State())
		}
	})

	t.Run("deep search is aborted once the budget is spent", func(t *testing.T) {
		slow := func(env game.Environment, player game.Player) float64 {
			time.Sleep(time.Millisecond)
			return game.Neutral(env, player)
		}
		s := NewMinimax(first, WithDepth(4), WithTimeout(20*time.Millisecond), WithEvaluationFn(slow), WithMetrics())

		start := time.Now()
		_, err := s.ChooseAction(context.Background(), newGame(t))

		require.ErrorIs(t, err, agent.ErrSearchTimeout)
		require.Less(t, time.Since(start), time.Second, "Search should stop shortly after the deadline")
		require.True(t, s.LastMetrics().TimedOut)
		require.Less(t, s.LastMetrics().Leaves, int64(7*7*7*7), "Search should not finish the tree")
	})

	t.Run("canceled parent context is not a timeout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewMinimax(first).ChooseAction(ctx, newGame(t))

		require.ErrorIs(t, err, context.Canceled)
		require.NotErrorIs(t, err, agent.ErrSearchTimeout)
	})
}

func TestChooseActionInProgress(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	blocking := func(env game.Environment, player game.Player) float64 {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return 0
	}
	s := NewMinimax(first, WithDepth(1), WithEvaluationFn(blocking))
	env := newGame(t)

	done := make(chan error)
	go func() {
		_, err := s.ChooseAction(context.Background(), env)
		done <- err
	}()
	<-started

	require.Equal(t, Searching, s.State())
	_, err := s.ChooseAction(context.Background(), env)
	require.ErrorIs(t, err, ErrSearchInProgress)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, Done, s.State())
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	heuristics := map[string]game.Evaluate{
		"zero":       game.Zero,
		"neutral":    game.Neutral,
		"passive":    game.Passive,
		"aggressive": game.Aggressive,
	}

	for i := 0; i < 25; i++ {
		env := randomMidGame(t, r, 4+r.Intn(16))
		player := env.CurrentPlayer()
		for name, evaluate := range heuristics {
			for depth := 1; depth <= 3; depth++ {
				options := []Option{WithDepth(depth), WithEvaluationFn(evaluate), WithTimeout(time.Minute), WithMetrics()}
				mm := NewMinimax(player, options...)
				ab := NewAlphaBeta(player, options...)

				want, err := mm.ChooseAction(context.Background(), env)
				require.NoError(t, err)
				got, err := ab.ChooseAction(context.Background(), env)
				require.NoError(t, err)

				require.Equal(t, want, got, "board %d, heuristic %s, depth %d:\n%s", i, name, depth, env.Render())
				require.LessOrEqual(t, ab.LastMetrics().Nodes, mm.LastMetrics().Nodes,
					"Pruning should never visit more nodes")
			}
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(99))

	for i := 0; i < 10; i++ {
		env := randomMidGame(t, r, 2+r.Intn(12))
		player := env.CurrentPlayer()
		for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
			options := []Option{WithDepth(3), WithEvaluationFn(game.Neutral), WithTimeout(time.Minute)}
			sequential := New(player, algorithm, options...)
			parallel := New(player, algorithm, append(options, WithGoroutines(4))...)

			want, err := sequential.ChooseAction(context.Background(), env)
			require.NoError(t, err)
			got, err := parallel.ChooseAction(context.Background(), env)
			require.NoError(t, err)

			require.Equal(t, want, got, "%s on board %d:\n%s", algorithm, i, env.Render())
		}
	}
}

func TestSearchMetrics(t *testing.T) {
	env := newGame(t, 3, 3, 4)
	mm := NewMinimax(second, WithDepth(3), WithEvaluationFn(game.Neutral), WithMetrics())
	ab := NewAlphaBeta(second, WithDepth(3), WithEvaluationFn(game.Neutral), WithMetrics())

	_, err := mm.ChooseAction(context.Background(), env)
	require.NoError(t, err)
	_, err = ab.ChooseAction(context.Background(), env)
	require.NoError(t, err)

	require.Equal(t, int64(7+7*7+7*7*7), mm.LastMetrics().Nodes, "Minimax should visit the full tree")
	require.Equal(t, int64(7*7*7), mm.LastMetrics().Leaves)
	require.Zero(t, mm.LastMetrics().Cutoffs)
	require.Positive(t, ab.LastMetrics().Cutoffs, "Alpha-beta should prune")
	require.Less(t, ab.LastMetrics().Nodes, mm.LastMetrics().Nodes)
	require.False(t, ab.LastMetrics().TimedOut)

	require.Zero(t, NewMinimax(second).LastMetrics(), "Metrics are off by default")
}
