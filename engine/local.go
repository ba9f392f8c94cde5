package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inrow/agent"
	"inrow/experiments/metrics"
	"inrow/game"
	"inrow/searcher"

	"github.com/rs/zerolog/log"
)

// Engine plays one game between two in-process agents. It is the only writer of the
// live environment; agents receive it read-only and search on copies.
type Engine struct {
	env             game.Environment
	agents          [2]agent.Agent // Indexed by seat
	maxIllegalMoves int
	metrics         metrics.Collector
}

type searchReporter interface {
	LastMetrics() searcher.SearchMetrics
}

// New seats one agent per player of env, matched by name.
func New(env game.Environment, agents []agent.Agent, options ...Option) (*Engine, error) {
	if len(agents) != 2 {
		return nil, fmt.Errorf("%w: need 2 agents, got %d", ErrAgentMismatch, len(agents))
	}
	e := &Engine{
		env:             env,
		maxIllegalMoves: MaxIllegalMoves,
		metrics:         metrics.NewCollector(),
	}
	players := env.Players()
	for _, a := range agents {
		switch a.Name() {
		case players[0]:
			e.agents[0] = a
		case players[1]:
			e.agents[1] = a
		default:
			return nil, fmt.Errorf("%w: no seat for %q", ErrAgentMismatch, a.Name())
		}
	}
	if e.agents[0] == nil || e.agents[1] == nil {
		return nil, fmt.Errorf("%w: both agents claim the same seat", ErrAgentMismatch)
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run resets the game and alternates agents until the game is over or a player times
// out. Any other agent error, repeated illegal moves, or ctx cancellation abandon the
// match with an error.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.env.Reset()
	players := e.env.Players()
	e.metrics.Start(players)

	log.Info().Msgf("player %s is starting", players[0])

	illegal := 0
	for !e.env.IsTerminalState() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		player := e.env.CurrentPlayer()
		a := e.agents[e.seat(player)]

		start := time.Now()
		move, err := a.ChooseAction(ctx, e.env)
		elapsed := time.Since(start)
		if err != nil {
			var timeout *agent.PlayerTimeout
			if errors.As(err, &timeout) {
				log.Info().Str("player", string(player)).Msg("player forfeits on time")
				return e.complete(player), nil
			}
			return Result{}, fmt.Errorf("engine: agent %q failed: %w", player, err)
		}

		if _, err := e.env.ApplyAction(player, move); err != nil {
			illegal++
			log.Warn().Err(err).Str("player", string(player)).Int("move", move).Msg("illegal move")
			if illegal >= e.maxIllegalMoves {
				return Result{}, fmt.Errorf("%w: %q made %d in a row", ErrTooManyIllegalMoves, player, illegal)
			}
			continue
		}
		illegal = 0

		m := metrics.MoveMetric{Player: player, Move: move, Elapsed: elapsed}
		if r, ok := a.(searchReporter); ok {
			m.SearchMetrics = r.LastMetrics()
		}
		e.metrics.AddMove(m)
	}

	return e.complete(""), nil
}

func (e *Engine) complete(timedOut game.Player) Result {
	players := e.env.Players()
	var statuses [2]game.Status
	if timedOut != "" {
		for i, p := range players {
			statuses[i] = game.Won
			if p == timedOut {
				statuses[i] = game.Lost
			}
		}
	} else {
		for i, p := range players {
			statuses[i] = e.env.PlayerStatus(p)
		}
	}

	g, moves := e.metrics.Complete(statuses, timedOut)
	log.Info().
		Str("winner", string(g.Winner)).
		Int("moves", g.TotalMoves).
		Dur("duration", g.Duration).
		Msg("game over")
	return Result{GameMetric: g, Moves: moves}
}

func (e *Engine) seat(player game.Player) int {
	if player == e.env.Players()[0] {
		return 0
	}
	return 1
}
