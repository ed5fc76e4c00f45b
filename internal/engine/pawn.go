package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// promotionOrder is the order promotions are generated in.
var promotionOrder = []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// genPawnMoves appends the pseudo-legal moves of the pawn on from:
// pushes first, then captures towards the a-file and the h-file.
func genPawnMoves(p *chess.Position, from chess.Square, moves []chess.Move) []chess.Move {
	pawn := p.Get(from)
	colour := pawn.Colour()
	dir := chess.ColourOffset(colour)

	one := from.Offset(0, dir)
	if one.IsValid() && p.Get(one) == chess.Empty {
		moves = appendPawnMove(moves, pawn, from, one, false)

		startRank := backRank(colour) + dir
		two := from.Offset(0, 2*dir)
		if from.RankIndex() == startRank && p.Get(two) == chess.Empty {
			moves = append(moves, chess.Move{
				Piece: pawn, From: from, To: two, Kind: chess.DoublePawnPush, RookFrom: chess.OffBoard,
			})
		}
	}

	for _, df := range []int{-1, 1} {
		to := from.Offset(df, dir)
		if !to.IsValid() {
			continue
		}
		target := p.Get(to)
		switch {
		case target != chess.Empty && target.Colour() != colour:
			moves = appendPawnMove(moves, pawn, from, to, true)
		case target == chess.Empty && to == p.EnPassant:
			moves = append(moves, chess.Move{
				Piece: pawn, From: from, To: to, Kind: chess.EnPassantCapture, RookFrom: chess.OffBoard,
			})
		}
	}
	return moves
}

// appendPawnMove adds a single-step pawn move, expanding it into the four
// promotions on the last rank.
func appendPawnMove(moves []chess.Move, pawn chess.Piece, from, to chess.Square, capture bool) []chess.Move {
	if to.RankIndex() == promotionRank(pawn.Colour()) {
		for _, t := range promotionOrder {
			moves = append(moves, chess.Move{
				Piece: pawn, From: from, To: to, Kind: chess.PromotionMove,
				Promotion: t, PromotionCapture: capture, RookFrom: chess.OffBoard,
			})
		}
		return moves
	}
	kind := chess.NormalMove
	if capture {
		kind = chess.CaptureMove
	}
	return append(moves, chess.Move{Piece: pawn, From: from, To: to, Kind: kind, RookFrom: chess.OffBoard})
}
