package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *chess.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(p)
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		nodes += Perft(ApplyMove(p, m), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by its
// coordinate text.
func Divide(p *chess.Position, depth int) map[string]int64 {
	out := make(map[string]int64)
	for _, m := range LegalMoves(p) {
		out[m.String()] = Perft(ApplyMove(p, m), depth-1)
	}
	return out
}
