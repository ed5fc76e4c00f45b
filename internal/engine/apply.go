package engine

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// ApplyMove returns the position after m without checking legality. The
// result carries no hashes; use NextPosition for a validated, hashed
// successor.
func ApplyMove(p *chess.Position, m chess.Move) *chess.Position {
	next := p.Clone()
	mover := p.ToMove
	enemy := mover.Opposite()

	next.EnPassant = chess.OffBoard
	next.HalfmoveClock++
	next.PositionHash = 0
	next.RecordHash = 0

	if m.Kind == chess.CastleMove {
		applyCastle(next, m)
	} else {
		captureSq := m.To
		if m.Kind == chess.EnPassantCapture {
			captureSq = m.To.Offset(0, -chess.ColourOffset(mover))
		}
		captured := next.Get(captureSq)
		next.Set(captureSq, chess.Empty)

		placed := m.Piece
		if m.Kind == chess.PromotionMove {
			placed = chess.MakeColouredPiece(mover, m.Promotion)
		}
		next.Set(m.From, chess.Empty)
		next.Set(m.To, placed)

		if m.Piece.Type() == chess.Pawn || captured != chess.Empty {
			next.HalfmoveClock = 0
		}
		if m.Kind == chess.DoublePawnPush {
			next.EnPassant = m.From.Offset(0, chess.ColourOffset(mover))
		}
		switch m.Piece.Type() {
		case chess.King:
			next.ClearCastling(mover)
		case chess.Rook:
			updateCastlingRightsForRook(next, mover, m.From)
		}
		if captured.Type() == chess.Rook {
			updateCastlingRightsForRook(next, enemy, captureSq)
		}
	}

	if mover == chess.Black {
		next.MoveNumber++
	}
	next.ToMove = enemy
	next.LastMove = m
	return next
}

// NextPosition validates m against p and returns the hashed successor.
// m may be partially specified: it is resolved by ResolveMove.
func NextPosition(p *chess.Position, m chess.Move) (*chess.Position, error) {
	if m.IsNull() {
		return nil, errors.ErrNullMove
	}
	legal, ok := ResolveMove(p, m)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrIllegalMove, m)
	}
	next := ApplyMove(p, legal)
	hashing.Stamp(next, p)
	return next, nil
}

// ResolveMove finds the legal move of p that m describes. Origin,
// destination and promotion piece must agree; a castle may also be named
// by its side alone.
func ResolveMove(p *chess.Position, m chess.Move) (chess.Move, bool) {
	if m.IsNull() {
		return chess.NullMove, false
	}
	for _, legal := range LegalMoves(p) {
		if legal == m {
			return legal, true
		}
	}
	for _, legal := range LegalMoves(p) {
		if m.Kind == chess.CastleMove && legal.Kind == chess.CastleMove && legal.Castle == m.Castle {
			return legal, true
		}
		if legal.From == m.From && legal.To == m.To && legal.Promotion == m.Promotion {
			return legal, true
		}
	}
	return chess.NullMove, false
}

// FindMove resolves a move given as an origin/destination pair. A castle
// is found by the king's destination or by the castling rook's square.
// promotion is ignored unless the move promotes, where NoPieceType means queen.
func FindMove(p *chess.Position, from, to chess.Square, promotion chess.PieceType) (chess.Move, bool) {
	if promotion == chess.NoPieceType {
		promotion = chess.Queen
	}
	moves := LegalMoves(p)
	for _, m := range moves {
		if m.Kind == chess.CastleMove || m.From != from || m.To != to {
			continue
		}
		if m.Kind == chess.PromotionMove && m.Promotion != promotion {
			continue
		}
		return m, true
	}
	for _, m := range moves {
		if m.Kind == chess.CastleMove && m.From == from && (m.To == to || m.RookFrom == to) {
			return m, true
		}
	}
	return chess.NullMove, false
}
