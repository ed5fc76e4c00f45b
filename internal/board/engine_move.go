package board

import (
	"context"
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/notation"
	"github.com/lgbarn/chesscore-go/internal/search"
)

// EngineResult is delivered when an engine move completes or fails.
type EngineResult struct {
	Move  chess.Move
	SAN   string
	Score int
	Depth int
	Nodes int64
	Err   error
}

// RequestEngineMove searches the tip on a new goroutine and plays the
// move found. The board lock is held only to copy the tip and, after the
// search, to commit the move; if the tip changed in between, nothing is
// played and the result carries ErrIllegalMove. deliver is called exactly
// once, from the search goroutine.
func (b *Board) RequestEngineMove(ctx context.Context, s *search.Searcher, depth int, deliver func(EngineResult)) {
	b.mu.Lock()
	over := b.gameOver()
	snapshot := b.tip().Clone()
	b.mu.Unlock()

	go func() {
		if over.IsOver() {
			b.mu.Lock()
			err := b.fail(fmt.Errorf("%w: %s", errors.ErrGameOver, over), "")
			b.mu.Unlock()
			deliver(EngineResult{Err: err})
			return
		}

		b.logger.Debug("engine search", "depth", depth, "hash", hashing.HashToString(snapshot.PositionHash))
		res, err := s.Search(ctx, snapshot, depth)
		if err != nil {
			deliver(EngineResult{Depth: depth, Err: err})
			return
		}
		san, err := notation.Encode(snapshot, res.Move)
		if err != nil {
			deliver(EngineResult{Depth: depth, Err: err})
			return
		}

		out := EngineResult{Move: res.Move, SAN: san, Score: res.Score, Depth: res.Depth, Nodes: res.Nodes}
		b.mu.Lock()
		if b.tip().RecordHash != snapshot.RecordHash {
			out.Err = b.fail(fmt.Errorf("%w: position changed during search", errors.ErrIllegalMove), san)
		} else {
			_, out.Err = b.makeMove(res.Move, san)
		}
		b.mu.Unlock()
		deliver(out)
	}()
}

// MakeEngineMove is RequestEngineMove waiting for the result.
func (b *Board) MakeEngineMove(ctx context.Context, s *search.Searcher, depth int) (EngineResult, error) {
	done := make(chan EngineResult, 1)
	b.RequestEngineMove(ctx, s, depth, func(r EngineResult) {
		done <- r
	})
	r := <-done
	return r, r.Err
}
