package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
)

// Rules holds the thresholds of the draw rules.
type Rules struct {
	// FiftyMoveClock is the halfmove clock value that draws the game.
	// Zero disables the rule.
	FiftyMoveClock int
	// RepetitionCount is the number of occurrences of one position that
	// draws the game. Zero disables the rule.
	RepetitionCount int
}

// DefaultRules returns fifty moves (100 halfmoves) and threefold repetition.
func DefaultRules() Rules {
	return Rules{FiftyMoveClock: 100, RepetitionCount: 3}
}

// Classify labels p given its legal moves and how many times its position
// hash has occurred in the game so far, this occurrence included.
// Mate and stalemate take precedence over the draw rules, which are
// checked in the order insufficient material, repetition, fifty moves.
func Classify(p *chess.Position, legal []chess.Move, repetitions int, rules Rules) chess.GameState {
	check := IsInCheck(p, p.ToMove)
	if len(legal) == 0 {
		if check {
			return chess.Checkmate
		}
		return chess.Stalemate
	}
	if HasInsufficientMaterial(p) {
		return chess.InsufficientMaterial
	}
	if rules.RepetitionCount > 0 && repetitions >= rules.RepetitionCount {
		return chess.RepetitionDraw
	}
	if rules.FiftyMoveClock > 0 && p.HalfmoveClock >= rules.FiftyMoveClock {
		return chess.FiftyMoveDraw
	}
	if check {
		return chess.Check
	}
	return chess.InPlay
}

// ClassifyPosition is Classify for a position seen once, with its legal
// moves generated here.
func ClassifyPosition(p *chess.Position, rules Rules) chess.GameState {
	return Classify(p, LegalMoves(p), 1, rules)
}

// HasInsufficientMaterial returns true if neither side can possibly mate:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K and any bishops vs K and any bishops, all bishops on one square colour
func HasInsufficientMaterial(p *chess.Position) bool {
	var minors [2][]chess.PieceType
	lightBishops, darkBishops := 0, 0

	for sq := chess.Square(0); sq < chess.OffBoard; sq++ {
		piece := p.Squares[sq]
		if piece == chess.Empty {
			continue
		}
		switch piece.Type() {
		case chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		case chess.Bishop:
			if sq.IsLight() {
				lightBishops++
			} else {
				darkBishops++
			}
		}
		minors[piece.Colour()] = append(minors[piece.Colour()], piece.Type())
	}

	total := len(minors[chess.White]) + len(minors[chess.Black])
	if total <= 1 {
		return true
	}
	knights := total - lightBishops - darkBishops
	return knights == 0 && (lightBishops == 0 || darkBishops == 0)
}
