package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked.
// A position without that king is never in check.
func IsInCheck(p *chess.Position, colour chess.Colour) bool {
	king := p.KingSquare(colour)
	if !king.IsValid() {
		king = findKing(p, colour)
		if !king.IsValid() {
			return false
		}
	}
	return IsSquareAttacked(p, king, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(p *chess.Position, colour chess.Colour) chess.Square {
	king := chess.MakeColouredPiece(colour, chess.King)
	for sq := chess.Square(0); sq < chess.OffBoard; sq++ {
		if p.Squares[sq] == king {
			return sq
		}
	}
	return chess.OffBoard
}

// IsSquareAttacked returns true if sq is attacked by a piece of byColour.
func IsSquareAttacked(p *chess.Position, sq chess.Square, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, relative to their direction.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	dir := -chess.ColourOffset(byColour)
	for _, df := range []int{-1, 1} {
		if from := sq.Offset(df, dir); from.IsValid() && p.Get(from) == pawn {
			return true
		}
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if from := sq.Offset(o[0], o[1]); from.IsValid() && p.Get(from) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if from := sq.Offset(o[0], o[1]); from.IsValid() && p.Get(from) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	if slidingAttack(p, sq, diagonalDirs, chess.MakeColouredPiece(byColour, chess.Bishop), queen) {
		return true
	}
	return slidingAttack(p, sq, straightDirs, chess.MakeColouredPiece(byColour, chess.Rook), queen)
}

// slidingAttack looks along each direction for the first piece and reports
// whether it is one of the two attackers.
func slidingAttack(p *chess.Position, sq chess.Square, dirs [][2]int, a, b chess.Piece) bool {
	for _, d := range dirs {
		for cur := sq.Offset(d[0], d[1]); cur.IsValid(); cur = cur.Offset(d[0], d[1]) {
			piece := p.Get(cur)
			if piece == chess.Empty {
				continue
			}
			if piece == a || piece == b {
				return true
			}
			break
		}
	}
	return false
}
