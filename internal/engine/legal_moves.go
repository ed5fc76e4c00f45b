package engine

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// PseudoLegalMoves returns the moves of the side to move that obey piece
// movement, ignoring whether they leave the own king attacked. Castles are
// already fully checked. Moves come in ascending origin order, castles
// right after the king's other moves.
func PseudoLegalMoves(p *chess.Position) []chess.Move {
	moves := make([]chess.Move, 0, 48)
	for sq := chess.Square(0); sq < chess.OffBoard; sq++ {
		piece := p.Squares[sq]
		if piece == chess.Empty || piece.Colour() != p.ToMove {
			continue
		}
		switch piece.Type() {
		case chess.Pawn:
			moves = genPawnMoves(p, sq, moves)
		case chess.King:
			moves = genPieceMoves(p, sq, moves)
			moves = genCastles(p, moves)
		default:
			moves = genPieceMoves(p, sq, moves)
		}
	}
	return moves
}

// leavesKingSafe reports whether m does not expose the mover's own king.
func leavesKingSafe(p *chess.Position, m chess.Move) bool {
	return !IsInCheck(ApplyMove(p, m), p.ToMove)
}

// LegalMoves returns every legal move of the side to move in a stable
// order. The result is empty exactly when the side to move is mated or
// stalemated.
func LegalMoves(p *chess.Position) []chess.Move {
	pseudo := PseudoLegalMoves(p)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if leavesKingSafe(p, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// RequireLegalMoves is LegalMoves for callers that need the game to go on:
// a terminal position yields ErrNoLegalMoves naming its state.
func RequireLegalMoves(p *chess.Position) ([]chess.Move, error) {
	moves := LegalMoves(p)
	if len(moves) == 0 {
		state := chess.Stalemate
		if IsInCheck(p, p.ToMove) {
			state = chess.Checkmate
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrNoLegalMoves, state)
	}
	return moves, nil
}

// IsLegal reports whether m is exactly one of the legal moves of p.
func IsLegal(p *chess.Position, m chess.Move) bool {
	if m.IsNull() {
		return false
	}
	for _, legal := range LegalMoves(p) {
		if legal == m {
			return true
		}
	}
	return false
}

// HasLegalMoves returns true if the side to move has at least one legal
// move. It stops at the first one found.
func HasLegalMoves(p *chess.Position) bool {
	_, ok := NewMoveIterator(p).Next()
	return ok
}

// LegalDestinations returns the squares the piece on from can legally move
// to. Castles report the king's destination.
func LegalDestinations(p *chess.Position, from chess.Square) []chess.Square {
	var out []chess.Square
	seen := make(map[chess.Square]bool)
	for _, m := range LegalMoves(p) {
		if m.From == from && !seen[m.To] {
			seen[m.To] = true
			out = append(out, m.To)
		}
	}
	return out
}
