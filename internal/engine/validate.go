package engine

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ValidatePosition checks what a FEN decode leaves to the caller: one king
// per side, no pawns on the first or last rank, and the side not to move
// not in check.
func ValidatePosition(p *chess.Position) error {
	var kings [2]int
	for sq := chess.Square(0); sq < chess.OffBoard; sq++ {
		piece := p.Squares[sq]
		switch piece.Type() {
		case chess.King:
			kings[piece.Colour()]++
		case chess.Pawn:
			if r := sq.RankIndex(); r == 0 || r == chess.BoardSize-1 {
				return fmt.Errorf("%w: pawn on %s", errors.ErrInvalidPosition, sq)
			}
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kings[colour] != 1 {
			return fmt.Errorf("%w: %s has %d kings", errors.ErrInvalidPosition, colour, kings[colour])
		}
	}
	if IsInCheck(p, p.ToMove.Opposite()) {
		return fmt.Errorf("%w: %s to move can capture the king", errors.ErrInvalidPosition, p.ToMove)
	}
	return nil
}
