package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// genPieceMoves appends the pseudo-legal moves of the knight, bishop, rook,
// queen or king on from. Castling is generated separately.
func genPieceMoves(p *chess.Position, from chess.Square, moves []chess.Move) []chess.Move {
	piece := p.Get(from)
	switch piece.Type() {
	case chess.Knight:
		return genStepMoves(p, from, piece, knightOffsets, moves)
	case chess.King:
		return genStepMoves(p, from, piece, kingOffsets, moves)
	case chess.Bishop:
		return genSlidingMoves(p, from, piece, diagonalDirs, moves)
	case chess.Rook:
		return genSlidingMoves(p, from, piece, straightDirs, moves)
	case chess.Queen:
		return genSlidingMoves(p, from, piece, queenDirs, moves)
	}
	return moves
}

func genStepMoves(p *chess.Position, from chess.Square, piece chess.Piece, offsets [][2]int, moves []chess.Move) []chess.Move {
	for _, o := range offsets {
		to := from.Offset(o[0], o[1])
		if !to.IsValid() {
			continue
		}
		if m, ok := pieceMoveTo(p, from, to, piece); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func genSlidingMoves(p *chess.Position, from chess.Square, piece chess.Piece, dirs [][2]int, moves []chess.Move) []chess.Move {
	for _, d := range dirs {
		for to := from.Offset(d[0], d[1]); to.IsValid(); to = to.Offset(d[0], d[1]) {
			m, ok := pieceMoveTo(p, from, to, piece)
			if ok {
				moves = append(moves, m)
			}
			if p.Get(to) != chess.Empty {
				break
			}
		}
	}
	return moves
}

// pieceMoveTo builds the move of piece to an empty or enemy-occupied square.
func pieceMoveTo(p *chess.Position, from, to chess.Square, piece chess.Piece) (chess.Move, bool) {
	target := p.Get(to)
	m := chess.Move{Piece: piece, From: from, To: to, Kind: chess.NormalMove, RookFrom: chess.OffBoard}
	if target == chess.Empty {
		return m, true
	}
	if target.Colour() == piece.Colour() {
		return chess.Move{}, false
	}
	m.Kind = chess.CaptureMove
	return m, true
}
