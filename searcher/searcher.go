package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"inrow/agent"
	"inrow/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(s *Searcher)

// Searcher is a depth-limited adversarial search agent. It explores copies of the
// environment only, and aborts the whole search once its time budget is spent.
type Searcher struct {
	name       game.Player
	algorithm  Algorithm
	depth      int
	timeout    time.Duration
	evaluate   game.Evaluate
	goroutines int
	metrics    MetricsCollector

	mu    sync.Mutex // Held for the duration of a search
	state atomic.Int32
	last  SearchMetrics
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithTimeout bounds the wall-clock time of each ChooseAction call. A zero timeout
// times out on the first node.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Searcher) {
		if timeout >= 0 {
			s.timeout = timeout
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

// WithGoroutines evaluates the root moves in parallel, each worker on its own copy of
// the environment.
func WithGoroutines(goroutines int) Option {
	return func(s *Searcher) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = NewMetricsCollector()
	}
}

// NewMinimax returns an agent running plain minimax.
func NewMinimax(name game.Player, options ...Option) *Searcher {
	return newSearcher(name, Minimax, options...)
}

// NewAlphaBeta returns an agent running minimax with alpha-beta pruning. It selects the
// same moves as NewMinimax with the same options, visiting fewer nodes.
func NewAlphaBeta(name game.Player, options ...Option) *Searcher {
	return newSearcher(name, AlphaBeta, options...)
}

// New returns an agent for the given algorithm.
func New(name game.Player, algorithm Algorithm, options ...Option) *Searcher {
	return newSearcher(name, algorithm, options...)
}

func newSearcher(name game.Player, algorithm Algorithm, options ...Option) *Searcher {
	s := &Searcher{ // Default values
		name:       name,
		algorithm:  algorithm,
		depth:      DefaultDepth,
		timeout:    DefaultTimeout,
		evaluate:   game.Zero,
		goroutines: 1,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Name() game.Player       { return s.name }
func (s *Searcher) Algorithm() Algorithm    { return s.algorithm }
func (s *Searcher) Depth() int              { return s.depth }
func (s *Searcher) Timeout() time.Duration  { return s.timeout }
func (s *Searcher) State() State            { return State(s.state.Load()) }
func (s *Searcher) String() string          { return fmt.Sprintf("%s(%s)", s.name, s.algorithm) }
func (s *Searcher) Evaluate() game.Evaluate { return s.evaluate }

// LastMetrics returns the metrics of the latest completed search. They are zero unless
// the agent was built WithMetrics.
func (s *Searcher) LastMetrics() SearchMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// ChooseAction searches env for the best move of the agent. Only one search may run per
// agent at a time; a concurrent call fails with ErrSearchInProgress.
func (s *Searcher) ChooseAction(ctx context.Context, env game.Environment) (int, error) {
	if !s.mu.TryLock() {
		return game.NoMove, ErrSearchInProgress
	}
	defer s.mu.Unlock()

	s.state.Store(int32(Searching))
	s.metrics.Start()
	searchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	move, value, err := s.search(searchCtx, env)
	if err != nil {
		if ctx.Err() == nil && errors.Is(searchCtx.Err(), context.DeadlineExceeded) {
			s.state.Store(int32(TimedOut))
			s.last = s.metrics.Complete(true)
			log.Warn().Str("player", string(s.name)).Dur("timeout", s.timeout).Msg("search timed out")
			return game.NoMove, &agent.PlayerTimeout{Player: s.name, Timeout: s.timeout}
		}
		s.state.Store(int32(Done))
		s.last = s.metrics.Complete(false)
		return game.NoMove, err
	}

	s.state.Store(int32(Done))
	s.last = s.metrics.Complete(false)
	log.Debug().
		Str("player", string(s.name)).
		Str("algorithm", s.algorithm.String()).
		Int("move", move).
		Float64("value", value).
		Int64("nodes", s.last.Nodes).
		Msg("search complete")
	return move, nil
}

// search evaluates every root move and returns the first one with the maximum value.
func (s *Searcher) search(ctx context.Context, env game.Environment) (int, float64, error) {
	moves := env.AvailableMoves(s.name)
	if len(moves) == 0 {
		return game.NoMove, 0, nil
	}

	var values []float64
	var err error
	if s.goroutines > 1 {
		values, err = s.evaluateParallel(ctx, env, moves)
	} else {
		values, err = s.evaluateSequential(ctx, env, moves)
	}
	if err != nil {
		return game.NoMove, 0, err
	}

	best := moves[0]
	bestValue := values[0]
	for i := 1; i < len(moves); i++ {
		if values[i] > bestValue {
			best = moves[i]
			bestValue = values[i]
		}
	}
	return best, bestValue, nil
}

// evaluateSequential narrows alpha across root moves. A root move whose value cannot beat
// the best so far may come back as an upper bound, which never changes the selection.
func (s *Searcher) evaluateSequential(ctx context.Context, env game.Environment, moves []int) ([]float64, error) {
	values := make([]float64, len(moves))
	alpha := math.Inf(-1)
	for i, move := range moves {
		child, err := s.play(env, s.name, move)
		if err != nil {
			return nil, err
		}
		values[i], err = s.value(ctx, child, s.depth-1, alpha, math.Inf(1))
		if err != nil {
			return nil, err
		}
		alpha = max(alpha, values[i])
	}
	return values, nil
}

// evaluateParallel searches each root move with a full window so that every value is
// exact and the selection does not depend on scheduling.
func (s *Searcher) evaluateParallel(ctx context.Context, env game.Environment, moves []int) ([]float64, error) {
	children := make([]game.Environment, len(moves))
	for i, move := range moves {
		child, err := s.play(env, s.name, move)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	values := make([]float64, len(moves))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.goroutines)
	for i, child := range children {
		i, child := i, child // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			v, err := s.value(gctx, child, s.depth-1, math.Inf(-1), math.Inf(1))
			values[i] = v
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *Searcher) value(ctx context.Context, env game.Environment, depth int, alpha, beta float64) (float64, error) {
	if s.algorithm == AlphaBeta {
		return s.alphabeta(ctx, env, depth, alpha, beta)
	}
	return s.minimax(ctx, env, depth)
}

// play returns a copy of env after player plays move.
func (s *Searcher) play(env game.Environment, player game.Player, move int) (game.Environment, error) {
	child := env.Copy()
	if _, err := child.ApplyAction(player, move); err != nil {
		return nil, fmt.Errorf("searcher: enumerated move %d rejected: %w", move, err)
	}
	return child, nil
}

// enter is called on every node before it is expanded. It polls the deadline and
// reports whether the node is a leaf.
func (s *Searcher) enter(ctx context.Context, env game.Environment, depth int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.metrics.AddNode()
	return depth <= 0 || env.IsTerminalState(), nil
}

func (s *Searcher) leaf(env game.Environment) float64 {
	s.metrics.AddLeaf()
	return s.evaluate(env, s.name)
}
