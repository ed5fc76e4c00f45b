package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// castleTargets returns where the king and rook land for a castle. The
// destinations are the same in standard chess and Chess960.
func castleTargets(colour chess.Colour, side chess.CastleSide) (kingTo, rookTo chess.Square) {
	rank := backRank(colour)
	if side == chess.Short {
		return chess.NewSquare(6, rank), chess.NewSquare(5, rank)
	}
	return chess.NewSquare(2, rank), chess.NewSquare(3, rank)
}

// genCastles appends the castles available to the side to move, short
// before long. Every square the king and the rook cross or land on must be
// empty apart from the two castling pieces, and the king may not be in
// check or pass through or land on an attacked square.
func genCastles(p *chess.Position, moves []chess.Move) []chess.Move {
	colour := p.ToMove
	kingFrom := p.KingSquare(colour)
	if !kingFrom.IsValid() || kingFrom.RankIndex() != backRank(colour) {
		return moves
	}
	king := chess.MakeColouredPiece(colour, chess.King)
	rook := chess.MakeColouredPiece(colour, chess.Rook)
	enemy := colour.Opposite()
	inCheck := false
	checked := false

	for _, side := range []chess.CastleSide{chess.Short, chess.Long} {
		col := p.CastleRook(colour, side)
		if col == 0 {
			continue
		}
		rookFrom := chess.SquareAt(col, chess.Rank(chess.RankBase+backRank(colour)))
		if p.Get(rookFrom) != rook {
			continue
		}
		kingTo, rookTo := castleTargets(colour, side)
		if !castlePathClear(p, kingFrom, kingTo, rookFrom) || !castlePathClear(p, rookFrom, rookTo, kingFrom) {
			continue
		}

		if !checked {
			inCheck = IsSquareAttacked(p, kingFrom, enemy)
			checked = true
		}
		if inCheck || !castleKingPathSafe(p, kingFrom, kingTo, enemy) {
			continue
		}

		moves = append(moves, chess.Move{
			Piece: king, From: kingFrom, To: kingTo, Kind: chess.CastleMove,
			Castle: side, RookFrom: rookFrom,
		})
	}
	return moves
}

// castlePathClear reports whether every square from from to to inclusive is
// empty, ignoring from itself and the other castling piece.
func castlePathClear(p *chess.Position, from, to, other chess.Square) bool {
	step := 1
	if to < from {
		step = -1
	}
	for sq := from; ; sq += chess.Square(step) {
		if sq != from && sq != other && p.Get(sq) != chess.Empty {
			return false
		}
		if sq == to {
			return true
		}
	}
}

// castleKingPathSafe reports whether no square the king crosses or lands on
// is attacked.
func castleKingPathSafe(p *chess.Position, from, to chess.Square, enemy chess.Colour) bool {
	step := 1
	if to < from {
		step = -1
	}
	for sq := from; ; sq += chess.Square(step) {
		if sq != from && IsSquareAttacked(p, sq, enemy) {
			return false
		}
		if sq == to {
			return true
		}
	}
}

// applyCastle moves king and rook onto their castling squares.
func applyCastle(next *chess.Position, m chess.Move) {
	colour := m.Piece.Colour()
	rook := next.Get(m.RookFrom)
	kingTo, rookTo := castleTargets(colour, m.Castle)

	next.Set(m.From, chess.Empty)
	next.Set(m.RookFrom, chess.Empty)
	next.Set(kingTo, m.Piece)
	next.Set(rookTo, rook)
	next.ClearCastling(colour)
}

// updateCastlingRightsForRook removes a castling right when the rook on sq
// moves or is captured.
func updateCastlingRightsForRook(p *chess.Position, colour chess.Colour, sq chess.Square) {
	if sq.RankIndex() != backRank(colour) {
		return
	}
	for _, side := range []chess.CastleSide{chess.Short, chess.Long} {
		if p.CastleRook(colour, side) == sq.Col() {
			p.SetCastleRook(colour, side, 0)
		}
	}
}
