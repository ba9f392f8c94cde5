package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateTerminal(t *testing.T) {
	t.Run("scoring a win and a loss with infinities", func(t *testing.T) {
		env := newGame(t, 2, 4)
		play(t, env, 0, 0, 1, 1, 2, 2, 3)

		for _, evaluate := range []Evaluate{Passive, Aggressive, Neutral, Zero} {
			require.Equal(t, math.Inf(1), evaluate(env, player1))
			require.Equal(t, math.Inf(-1), evaluate(env, player2))
		}
	})

	t.Run("scoring a draw with zero", func(t *testing.T) {
		env := newGame(t, 2, 2)
		play(t, env, 0, 0, 1, 1)

		for _, evaluate := range []Evaluate{Passive, Aggressive, Neutral, Zero} {
			require.Equal(t, 0.0, evaluate(env, player1))
			require.Equal(t, 0.0, evaluate(env, player2))
		}
	})
}

func TestEvaluateInRow(t *testing.T) {
	t.Run("zero weight ignores non-terminal positions", func(t *testing.T) {
		env := newGame(t, 6, 7)
		play(t, env, 3, 3, 2)

		require.Equal(t, 0.0, Zero(env, player1))
		require.Equal(t, 0.0, Heuristic(0)(env, player2))
	})

	t.Run("empty board is balanced", func(t *testing.T) {
		env := newGame(t, 6, 7)

		require.Equal(t, 0.0, Neutral(env, player1))
	})

	t.Run("single symbol counts once per adjacent empty cell and axis", func(t *testing.T) {
		env := newGame(t, 6, 7)
		play(t, env, 3)

		require.Equal(t, 5.0, Neutral(env, player1))
		require.Equal(t, -5.0, Neutral(env, player2))
	})

	t.Run("weights amplify one side of the score", func(t *testing.T) {
		env := newGame(t, 6, 7)
		play(t, env, 3)

		require.Equal(t, 7.5, Passive(env, player1), "Passive weight should amplify a favorable score")
		require.Equal(t, -5.0, Passive(env, player2), "Passive weight should leave an unfavorable score")
		require.Equal(t, 5.0, Aggressive(env, player1), "Aggressive weight should leave a favorable score")
		require.Equal(t, -7.5, Aggressive(env, player2), "Aggressive weight should amplify an unfavorable score")
	})

	t.Run("longer runs outweigh scattered symbols", func(t *testing.T) {
		stacked := newGame(t, 6, 7)
		play(t, stacked, 3, 0, 3, 6, 3)
		scattered := newGame(t, 6, 7)
		play(t, scattered, 1, 0, 3, 6, 5)

		require.Greater(t, Neutral(stacked, player1), Neutral(scattered, player1))
	})

	t.Run("panicking on foreign environments", func(t *testing.T) {
		require.Panics(t, func() { Neutral(fakeEnv{}, player1) })
	})
}

func TestHeuristicByName(t *testing.T) {
	for _, name := range []string{"passive", "aggressive", "neutral", "zero"} {
		fn, err := HeuristicByName(name)
		require.NoError(t, err)
		require.NotNil(t, fn)
	}

	_, err := HeuristicByName("reckless")
	require.ErrorIs(t, err, ErrUnknownHeuristic)
}

type fakeEnv struct{ Environment }

func (fakeEnv) IsTerminalState() bool { return false }
