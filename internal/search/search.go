// Package search picks moves by depth-limited minimax with alpha-beta
// pruning over the legal move generator.
package search

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/logging"
)

// MateScore is the score of delivering mate at the root. A mate found
// n plies from the root scores MateScore - n, so nearer mates win.
const MateScore = 100000

const infinity = math.MaxInt32

// Result is the outcome of a search.
type Result struct {
	Move  chess.Move
	Score int // centipawns, positive for White
	Nodes int64
	Depth int
}

// IsMate reports whether the score announces a forced mate.
func (r Result) IsMate() bool {
	return r.Score >= MateScore-1000 || r.Score <= -MateScore+1000
}

// Searcher holds the search settings. A Searcher is safe for concurrent
// use; each Search call works on its own copy of the position.
type Searcher struct {
	eval    Evaluator
	rules   engine.Rules
	workers int
	logger  *log.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEvaluator sets the static evaluation function.
func WithEvaluator(e Evaluator) Option {
	return func(s *Searcher) {
		if e != nil {
			s.eval = e
		}
	}
}

// WithWorkers bounds how many root moves are searched at once.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRules sets the draw rules scored as zero inside the tree.
// Repetition is not tracked inside the tree.
func WithRules(r engine.Rules) Option {
	return func(s *Searcher) {
		s.rules = r
	}
}

// WithLogger sets the logger for failures and search summaries.
func WithLogger(l *log.Logger) Option {
	return func(s *Searcher) {
		s.logger = l
	}
}

// NewSearcher returns a Searcher using the piece-square evaluator, the
// default draw rules and one worker per CPU.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		eval:    PieceSquare(),
		rules:   engine.DefaultRules(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

// Workers returns the root parallelism.
func (s *Searcher) Workers() int {
	return s.workers
}

// Search returns the best move for the side to move in p, searching depth
// plies. Each root move is searched with a full window on its own
// goroutine, so the result does not depend on scheduling: the best move is
// the first in generation order with the best score. p is not modified.
func (s *Searcher) Search(ctx context.Context, p *chess.Position, depth int) (Result, error) {
	hash := hashing.HashToString(p.PositionHash)
	if depth < 1 {
		return Result{}, logging.FailTo(s.logger, fmt.Errorf("%w: %d", errors.ErrInvalidDepth, depth), "depth", depth)
	}
	legal, err := engine.RequireLegalMoves(p)
	if err != nil {
		return Result{}, logging.FailTo(s.logger, err, "hash", hash)
	}

	root := p.Clone()
	scores := make([]int, len(legal))
	var nodes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, m := range legal {
		g.Go(func() error {
			score, err := s.alphaBeta(gctx, engine.ApplyMove(root, m), depth-1, 1, -infinity, infinity, &nodes)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, logging.FailTo(s.logger, err, "hash", hash, "depth", depth)
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if better(root.ToMove, scores[i], scores[best]) {
			best = i
		}
	}
	res := Result{Move: legal[best], Score: scores[best], Nodes: nodes.Load() + 1, Depth: depth}
	s.logger.Debug("search done", "hash", hash, "depth", depth, "move", res.Move, "score", res.Score, "nodes", res.Nodes)
	return res, nil
}

// better reports whether score a is strictly better than b for colour.
func better(colour chess.Colour, a, b int) bool {
	if colour == chess.White {
		return a > b
	}
	return a < b
}

// alphaBeta scores p from White's side. White maximises, Black minimises.
func (s *Searcher) alphaBeta(ctx context.Context, p *chess.Position, depth, ply, alpha, beta int, nodes *atomic.Int64) (int, error) {
	nodes.Add(1)
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	legal := engine.LegalMoves(p)
	switch state := engine.Classify(p, legal, 1, s.rules); {
	case state == chess.Checkmate:
		if p.ToMove == chess.White {
			return -(MateScore - ply), nil
		}
		return MateScore - ply, nil
	case state.IsDraw():
		return 0, nil
	}
	if depth == 0 {
		return s.eval.Evaluate(p), nil
	}

	maximising := p.ToMove == chess.White
	best := infinity
	if maximising {
		best = -infinity
	}
	for _, m := range legal {
		score, err := s.alphaBeta(ctx, engine.ApplyMove(p, m), depth-1, ply+1, alpha, beta, nodes)
		if err != nil {
			return 0, err
		}
		if maximising {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}
