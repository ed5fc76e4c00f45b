package search

import "github.com/lgbarn/chesscore-go/internal/chess"

// Evaluator scores a position statically. Scores are in centipawns and
// positive when White stands better, whichever side is to move.
type Evaluator interface {
	Evaluate(p *chess.Position) int
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(p *chess.Position) int

// Evaluate calls f(p).
func (f EvaluatorFunc) Evaluate(p *chess.Position) int {
	return f(p)
}

var pieceValues = [...]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   0,
}

// PieceValue returns the material value of a piece type in centipawns.
func PieceValue(t chess.PieceType) int {
	if int(t) >= len(pieceValues) {
		return 0
	}
	return pieceValues[t]
}

// Material counts material only.
func Material() Evaluator {
	return EvaluatorFunc(func(p *chess.Position) int {
		score := 0
		for _, piece := range p.Squares {
			if piece.IsEmpty() {
				continue
			}
			if piece.Colour() == chess.White {
				score += PieceValue(piece.Type())
			} else {
				score -= PieceValue(piece.Type())
			}
		}
		return score
	})
}

// Piece-square tables from White's side, rank 8 first as the board is
// drawn. Black reads them mirrored.
var pieceSquareTables = [...][chess.NumSquares]int{
	chess.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	chess.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	chess.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	chess.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	chess.King: {
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}

// tableIndex maps a square to its slot in a piece-square table.
func tableIndex(sq chess.Square, colour chess.Colour) int {
	if colour == chess.White {
		return (chess.BoardSize-1-sq.RankIndex())*chess.BoardSize + sq.File()
	}
	return sq.RankIndex()*chess.BoardSize + sq.File()
}

// PieceSquare counts material plus a positional bonus from fixed
// piece-square tables. It is the default evaluator.
func PieceSquare() Evaluator {
	return EvaluatorFunc(func(p *chess.Position) int {
		score := 0
		for i, piece := range p.Squares {
			if piece.IsEmpty() {
				continue
			}
			t := piece.Type()
			v := PieceValue(t) + pieceSquareTables[t][tableIndex(chess.Square(i), piece.Colour())]
			if piece.Colour() == chess.White {
				score += v
			} else {
				score -= v
			}
		}
		return score
	})
}
