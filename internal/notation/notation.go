// Package notation converts between moves and Standard Algebraic Notation.
package notation

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// Length bounds of a SAN token, from "e4" to "Qd5xRd1+".
const (
	MinLength = 2
	MaxLength = 8
)

// Notation is a parsed SAN token. Pawns have Piece set to chess.Pawn;
// DisFile and DisRank are zero when absent.
type Notation struct {
	Piece     chess.PieceType
	DisFile   chess.Col
	DisRank   chess.Rank
	Capture   bool
	To        chess.Square
	Promotion chess.PieceType
	Check     bool
	Checkmate bool
	Castle    chess.CastleSide
}

// FromMove builds the notation of m in p, adding disambiguation only where
// another legal move needs to be told apart. m must be legal in p.
func FromMove(p *chess.Position, m chess.Move) (Notation, error) {
	legal := engine.LegalMoves(p)
	if !contains(legal, m) {
		return Notation{}, fmt.Errorf("%w: %w: %s in position %s",
			errors.ErrNotationParse, errors.ErrIllegalMove, m, hashing.HashToString(p.PositionHash))
	}

	var n Notation
	next := engine.ApplyMove(p, m)
	if engine.IsInCheck(next, next.ToMove) {
		if engine.HasLegalMoves(next) {
			n.Check = true
		} else {
			n.Checkmate = true
		}
	}

	if m.Kind == chess.CastleMove {
		n.Castle = m.Castle
		return n, nil
	}

	n.Piece = m.Piece.Type()
	n.To = m.To
	n.Capture = m.IsCapture()
	if m.Kind == chess.PromotionMove {
		n.Promotion = m.Promotion
	}

	if n.Piece == chess.Pawn {
		if n.Capture {
			n.DisFile = m.From.Col()
		}
		return n, nil
	}

	sameFile, sameRank, collides := false, false, false
	for _, other := range legal {
		if other.Piece != m.Piece || other.To != m.To || other.From == m.From || other.Kind == chess.CastleMove {
			continue
		}
		collides = true
		if other.From.Col() == m.From.Col() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !collides:
	case !sameFile:
		n.DisFile = m.From.Col()
	case !sameRank:
		n.DisRank = m.From.Rank()
	default:
		n.DisFile = m.From.Col()
		n.DisRank = m.From.Rank()
	}
	return n, nil
}

// String renders the notation as SAN text.
func (n Notation) String() string {
	var sb strings.Builder
	if n.Castle != chess.NoCastle {
		sb.WriteString(n.Castle.String())
	} else {
		if n.Piece != chess.Pawn && n.Piece != chess.NoPieceType {
			sb.WriteByte(n.Piece.Letter())
		}
		if n.DisFile != 0 {
			sb.WriteByte(byte(n.DisFile))
		}
		if n.DisRank != 0 {
			sb.WriteByte(byte(n.DisRank))
		}
		if n.Capture {
			sb.WriteByte('x')
		}
		sb.WriteString(n.To.String())
		if n.Promotion != chess.NoPieceType {
			sb.WriteByte('=')
			sb.WriteByte(n.Promotion.Letter())
		}
	}
	if n.Checkmate {
		sb.WriteByte('#')
	} else if n.Check {
		sb.WriteByte('+')
	}
	return sb.String()
}

// Resolve finds the legal move of p the notation names. Candidates are
// filtered by castle side, or by piece, destination, capture and
// promotion; disambiguation is consulted only when several remain. No
// match and an ambiguous match both fail with ErrMoveNotFound.
func (n Notation) Resolve(p *chess.Position) (chess.Move, error) {
	legal, err := engine.RequireLegalMoves(p)
	if err != nil {
		return chess.NullMove, fmt.Errorf("%w: %s: %w", errors.ErrMoveNotFound, n, err)
	}

	var candidates []chess.Move
	for _, m := range legal {
		if n.matches(m) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if len(candidates) > 1 && (n.DisFile != 0 || n.DisRank != 0) {
		var narrowed []chess.Move
		for _, m := range candidates {
			if n.DisFile != 0 && m.From.Col() != n.DisFile {
				continue
			}
			if n.DisRank != 0 && m.From.Rank() != n.DisRank {
				continue
			}
			narrowed = append(narrowed, m)
		}
		if len(narrowed) == 1 {
			return narrowed[0], nil
		}
	}

	hash := hashing.HashToString(p.PositionHash)
	if len(candidates) == 0 {
		return chess.NullMove, fmt.Errorf("%w: %s in position %s", errors.ErrMoveNotFound, n, hash)
	}
	return chess.NullMove, fmt.Errorf("%w: %s is ambiguous in position %s between %v",
		errors.ErrMoveNotFound, n, hash, candidates)
}

func (n Notation) matches(m chess.Move) bool {
	if n.Castle != chess.NoCastle {
		return m.Kind == chess.CastleMove && m.Castle == n.Castle
	}
	if m.Kind == chess.CastleMove {
		return false
	}
	if m.Piece.Type() != n.Piece || m.To != n.To {
		return false
	}
	if n.Capture && !m.IsCapture() {
		return false
	}
	if n.Promotion != chess.NoPieceType && (m.Kind != chess.PromotionMove || m.Promotion != n.Promotion) {
		return false
	}
	return true
}

// Encode renders m, which must be legal in p, as SAN.
func Encode(p *chess.Position, m chess.Move) (string, error) {
	n, err := FromMove(p, m)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// Decode parses text and resolves it against p.
func Decode(text string, p *chess.Position) (chess.Move, error) {
	n, err := Parse(text)
	if err != nil {
		return chess.NullMove, err
	}
	return n.Resolve(p)
}

func contains(moves []chess.Move, m chess.Move) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}
