package engine

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN field names used in errors.
const (
	fieldPlacement = "placement"
	fieldColour    = "active colour"
	fieldCastling  = "castling"
	fieldEnPassant = "en passant"
	fieldHalfmove  = "halfmove clock"
	fieldFullmove  = "fullmove number"
)

// NewInitialPosition returns the hashed standard starting position.
func NewInitialPosition() *chess.Position {
	p, err := ParseFEN(InitialFEN)
	if err != nil {
		panic("engine: initial FEN does not parse: " + err.Error())
	}
	return p
}

// ParseFEN decodes a six-field FEN string into a hashed position. Castling
// rights may use KQkq or Shredder/X-FEN rook file letters. Only structure is
// checked; see ValidatePosition for playability.
func ParseFEN(fen string) (*chess.Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, &errors.FENError{Field: fieldPlacement, Value: fen, Reason: "expected 6 fields, got " + strconv.Itoa(len(parts))}
	}

	p := chess.NewPosition()
	if err := parsePiecePositions(p, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(p, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(p, parts[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(p, parts[3]); err != nil {
		return nil, err
	}
	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, &errors.FENError{Field: fieldHalfmove, Value: parts[4], Reason: "not a non-negative integer"}
	}
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, &errors.FENError{Field: fieldFullmove, Value: parts[5], Reason: "not a positive integer"}
	}
	p.HalfmoveClock = halfmove
	p.MoveNumber = fullmove
	p.Chess960 = IsChess960Position(p)

	hashing.Stamp(p, nil)
	return p, nil
}

func parsePiecePositions(p *chess.Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return &errors.FENError{Field: fieldPlacement, Value: placement, Reason: "expected 8 ranks"}
	}
	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromFEN(c)
			if !ok {
				return &errors.FENError{Field: fieldPlacement, Value: row, Reason: "unexpected character " + strconv.QuoteRune(rune(c))}
			}
			if file >= chess.BoardSize {
				return &errors.FENError{Field: fieldPlacement, Value: row, Reason: "rank has more than 8 files"}
			}
			p.Set(chess.NewSquare(file, rank), piece)
			file++
		}
		if file != chess.BoardSize {
			return &errors.FENError{Field: fieldPlacement, Value: row, Reason: "rank does not have 8 files"}
		}
	}
	return nil
}

func parseSideToMove(p *chess.Position, field string) error {
	switch field {
	case "w":
		p.ToMove = chess.White
	case "b":
		p.ToMove = chess.Black
	default:
		return &errors.FENError{Field: fieldColour, Value: field, Reason: "expected w or b"}
	}
	return nil
}

func parseCastlingRights(p *chess.Position, field string) error {
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		colour := chess.White
		if c >= 'a' && c <= 'z' {
			colour = chess.Black
			c -= 'a' - 'A'
		}
		king := p.KingSquare(colour)
		if !king.IsValid() || king.RankIndex() != backRank(colour) {
			return &errors.FENError{Field: fieldCastling, Value: field, Reason: colour.String() + " king is not on its back rank"}
		}

		var side chess.CastleSide
		var col chess.Col
		switch {
		case c == 'K':
			side, col = chess.Short, outermostRook(p, colour, king, 1)
		case c == 'Q':
			side, col = chess.Long, outermostRook(p, colour, king, -1)
		case c >= 'A' && c <= 'H':
			col = chess.Col(c - 'A' + chess.ColBase)
			side = chess.Short
			if col < king.Col() {
				side = chess.Long
			}
		default:
			return &errors.FENError{Field: fieldCastling, Value: field, Reason: "unexpected character " + strconv.QuoteRune(rune(field[i]))}
		}

		rookSq := chess.SquareAt(col, chess.Rank(chess.RankBase+backRank(colour)))
		if col == 0 || col == king.Col() || p.Get(rookSq) != chess.MakeColouredPiece(colour, chess.Rook) {
			return &errors.FENError{Field: fieldCastling, Value: field, Reason: "no rook for castling right " + strconv.QuoteRune(rune(field[i]))}
		}
		p.SetCastleRook(colour, side, col)
	}
	return nil
}

// outermostRook finds the rook furthest from the king in direction dir on
// the back rank, or 0.
func outermostRook(p *chess.Position, colour chess.Colour, king chess.Square, dir int) chess.Col {
	rook := chess.MakeColouredPiece(colour, chess.Rook)
	file := chess.BoardSize - 1
	if dir < 0 {
		file = 0
	}
	for ; file != king.File(); file -= dir {
		if sq := chess.NewSquare(file, king.RankIndex()); p.Get(sq) == rook {
			return sq.Col()
		}
	}
	return 0
}

func parseEnPassant(p *chess.Position, field string) error {
	if field == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return &errors.FENError{Field: fieldEnPassant, Value: field, Reason: "not a square"}
	}
	// The target lies behind a pawn of the side that just moved.
	want := 5
	if p.ToMove == chess.Black {
		want = 2
	}
	if sq.RankIndex() != want {
		return &errors.FENError{Field: fieldEnPassant, Value: field, Reason: "target on the wrong rank"}
	}
	p.EnPassant = sq
	return nil
}

// FEN encodes p. Castling rights are written as KQkq unless a right uses a
// rook that is not the outermost one, when Shredder file letters are used.
func FEN(p *chess.Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, p)
	sb.WriteByte(' ')
	if p.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, p)
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.MoveNumber))

	return sb.String()
}

func writePiecePositions(sb *strings.Builder, p *chess.Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := p.Get(chess.NewSquare(file, rank))
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENChar())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

func writeCastlingRights(sb *strings.Builder, p *chess.Position) {
	if !p.HasCastlingRights() {
		sb.WriteByte('-')
		return
	}
	shredder := needsShredderCastling(p)
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, side := range []chess.CastleSide{chess.Short, chess.Long} {
			col := p.CastleRook(colour, side)
			if col == 0 {
				continue
			}
			var c byte
			switch {
			case shredder:
				c = byte(col-chess.ColBase) + 'A'
			case side == chess.Short:
				c = 'K'
			default:
				c = 'Q'
			}
			if colour == chess.Black {
				c += 'a' - 'A'
			}
			sb.WriteByte(c)
		}
	}
}

// needsShredderCastling reports whether KQkq would not identify the
// castling rooks unambiguously.
func needsShredderCastling(p *chess.Position) bool {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		king := p.KingSquare(colour)
		for side, dir := range map[chess.CastleSide]int{chess.Short: 1, chess.Long: -1} {
			col := p.CastleRook(colour, side)
			if col != 0 && (!king.IsValid() || outermostRook(p, colour, king, dir) != col) {
				return true
			}
		}
	}
	return false
}
