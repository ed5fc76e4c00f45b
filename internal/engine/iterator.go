package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// MoveIterator yields legal moves one at a time, testing each candidate
// only when it is reached. It supports two protocols: draining it with Next,
// or asking for All before the first Next. Mixing them fails with
// ErrLazyIncompatibility, since All cannot know which moves were already
// handed out.
type MoveIterator struct {
	pos     *chess.Position
	pseudo  []chess.Move
	idx     int
	started bool
	done    bool
}

// NewMoveIterator returns an iterator over the legal moves of p.
func NewMoveIterator(p *chess.Position) *MoveIterator {
	return &MoveIterator{pos: p, pseudo: PseudoLegalMoves(p)}
}

// Next returns the next legal move, in LegalMoves order.
func (it *MoveIterator) Next() (chess.Move, bool) {
	it.started = true
	for it.idx < len(it.pseudo) {
		m := it.pseudo[it.idx]
		it.idx++
		if leavesKingSafe(it.pos, m) {
			return m, true
		}
	}
	it.done = true
	return chess.NullMove, false
}

// All returns the complete legal move list. It is valid before the first
// Next and after the iterator is exhausted.
func (it *MoveIterator) All() ([]chess.Move, error) {
	if it.started && !it.done {
		return nil, errors.ErrLazyIncompatibility
	}
	var out []chess.Move
	for _, m := range it.pseudo {
		if leavesKingSafe(it.pos, m) {
			out = append(out, m)
		}
	}
	return out, nil
}
