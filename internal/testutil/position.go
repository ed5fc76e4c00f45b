package testutil

import (
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/notation"
)

// MustParseFEN decodes fen and calls t.Fatal if it is malformed.
func MustParseFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	p, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

// MustPlaySAN plays the SAN moves in order from p and returns the position
// reached. It calls t.Fatal on the first move that does not resolve.
func MustPlaySAN(t *testing.T, p *chess.Position, moves ...string) *chess.Position {
	t.Helper()
	for i, text := range moves {
		m, err := notation.Decode(text, p)
		if err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
		if p, err = engine.NextPosition(p, m); err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
	}
	return p
}

// Square parses a square name, calling t.Fatal when it is not one.
func Square(t *testing.T, name string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return sq
}
