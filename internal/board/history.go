package board

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/logging"
	"github.com/lgbarn/chesscore-go/internal/notation"
)

// Len returns the number of positions in the history, start included.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.states)
}

// Cursor returns the index of the position being viewed.
func (b *Board) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// IsDetached reports whether the cursor is behind the tip.
func (b *Board) IsDetached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor != len(b.states)-1
}

// CurrentPosition returns a copy of the position under the cursor.
func (b *Board) CurrentPosition() *chess.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[b.cursor].Clone()
}

// Tip returns a copy of the latest position.
func (b *Board) Tip() *chess.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tip().Clone()
}

// StateAt returns a copy of history entry i.
func (b *Board) StateAt(i int) (*chess.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.states) {
		return nil, logging.FailTo(b.logger, fmt.Errorf("%w: index %d of %d", errors.ErrStateNotFound, i, len(b.states)), "index", i)
	}
	return b.states[i].Clone(), nil
}

// CheckoutPrev moves the cursor one position back. It returns false at
// the start of the game.
func (b *Board) CheckoutPrev() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	b.logger.Debug("checkout", "ply", b.cursor)
	return true
}

// CheckoutNext moves the cursor one position forward. It returns false at
// the tip.
func (b *Board) CheckoutNext() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor == len(b.states)-1 {
		return false
	}
	b.cursor++
	b.logger.Debug("checkout", "ply", b.cursor)
	return true
}

// CheckoutLatest moves the cursor to the tip.
func (b *Board) CheckoutLatest() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = len(b.states) - 1
}

// CheckoutState moves the cursor to the history entry equal to p. Entries
// are matched by record hash when p carries one, which tells apart
// repeated positions; otherwise the first entry with the same position is
// taken.
func (b *Board) CheckoutState(p *chess.Position) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.states {
		if p.RecordHash != 0 && s.RecordHash == p.RecordHash {
			b.cursor = i
			return nil
		}
	}
	if p.RecordHash == 0 {
		for i, s := range b.states {
			if s.Equal(p) {
				b.cursor = i
				return nil
			}
		}
	}
	return logging.FailTo(b.logger, errors.ErrStateNotFound, "hash", hashing.HashToString(p.RecordHash))
}

// sanAt renders the move that produced history entry i, i >= 1.
func (b *Board) sanAt(i int) string {
	text, err := notation.Encode(b.states[i-1], b.states[i].LastMove)
	if err != nil {
		// History only ever holds legal moves.
		return b.states[i].LastMove.String()
	}
	return text
}

// FindStatesByNotation returns the indexes of every entry whose incoming
// move renders as text. Several entries may match.
func (b *Board) FindStatesByNotation(text string) []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	var found []int
	for i := 1; i < len(b.states); i++ {
		if b.sanAt(i) == text {
			found = append(found, i)
		}
	}
	return found
}

// MoveHistory returns the SAN of every move played, in order.
func (b *Board) MoveHistory() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	moves := make([]string, 0, len(b.states)-1)
	for i := 1; i < len(b.states); i++ {
		moves = append(moves, b.sanAt(i))
	}
	return moves
}

// MovePairs returns the moves grouped by move number, as "1. e4 e5". A
// game starting with Black to move opens with "1... e5".
func (b *Board) MovePairs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var pairs []string
	var sb strings.Builder
	for i := 1; i < len(b.states); i++ {
		before := b.states[i-1]
		san := b.sanAt(i)
		if before.ToMove == chess.White {
			if sb.Len() > 0 {
				pairs = append(pairs, sb.String())
				sb.Reset()
			}
			fmt.Fprintf(&sb, "%d. %s", before.MoveNumber, san)
			continue
		}
		if sb.Len() == 0 {
			fmt.Fprintf(&sb, "%d... %s", before.MoveNumber, san)
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(san)
		pairs = append(pairs, sb.String())
		sb.Reset()
	}
	if sb.Len() > 0 {
		pairs = append(pairs, sb.String())
	}
	return pairs
}

// LastMoveNotation returns the SAN of the move that led to the cursor
// position, or "" at the start.
func (b *Board) LastMoveNotation() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor == 0 {
		return ""
	}
	return b.sanAt(b.cursor)
}

// PositionHashString returns the position hash under the cursor for display.
func (b *Board) PositionHashString() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return hashing.HashToString(b.states[b.cursor].PositionHash)
}

// RecordHashString returns the record hash under the cursor for display.
func (b *Board) RecordHashString() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return hashing.HashToString(b.states[b.cursor].RecordHash)
}
