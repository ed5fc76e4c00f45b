package engine

import (
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

func mustFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	p, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return p
}

func sq(name string) chess.Square {
	s, err := chess.ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return s
}

// play applies coordinate moves ("e2e4", "e7e8q") and fails the test on
// the first illegal one.
func play(t *testing.T, p *chess.Position, moves ...string) *chess.Position {
	t.Helper()
	for _, text := range moves {
		promo := chess.NoPieceType
		if len(text) == 5 {
			promo, _ = chess.PieceTypeFromLetter(text[4] - ('a' - 'A'))
		}
		m, ok := FindMove(p, sq(text[:2]), sq(text[2:4]), promo)
		if !ok {
			t.Fatalf("move %s is not legal in %s", text, FEN(p))
		}
		next, err := NextPosition(p, m)
		if err != nil {
			t.Fatalf("NextPosition(%s) error: %v", text, err)
		}
		p = next
	}
	return p
}
