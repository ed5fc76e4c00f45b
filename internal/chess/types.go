// Package chess provides core chess types: colours, pieces, squares, moves
// and the Position snapshot the engine operates on.
package chess

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PieceType is an uncoloured piece kind.
type PieceType int

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (t PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the single uppercase SAN letter of a piece type.
func (t PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if t >= 0 && int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// PieceTypeFromLetter converts an uppercase SAN letter into a piece type.
func PieceTypeFromLetter(c byte) (PieceType, bool) {
	switch c {
	case 'P':
		return Pawn, true
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	}
	return NoPieceType, false
}

// Piece is a coloured piece, or Empty.
type Piece int

// Empty is the content of an unoccupied square.
const Empty Piece = 0

// PieceShift is used for encoding coloured pieces.
const PieceShift = 3

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, t PieceType) Piece {
	return Piece((int(t) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(t PieceType) Piece {
	return MakeColouredPiece(White, t)
}

// B creates a black piece.
func B(t PieceType) Piece {
	return MakeColouredPiece(Black, t)
}

// Colour extracts the colour of a piece. It is meaningless for Empty.
func (p Piece) Colour() Colour {
	return Colour(p & 0x01)
}

// Type extracts the piece type.
func (p Piece) Type() PieceType {
	return PieceType(p >> PieceShift)
}

// IsEmpty reports whether p is Empty.
func (p Piece) IsEmpty() bool {
	return p == Empty
}

// FENChar returns the FEN letter: uppercase for White, lowercase for Black.
func (p Piece) FENChar() byte {
	if p == Empty {
		return '.'
	}
	c := p.Type().Letter()
	if p.Colour() == Black {
		c += 'a' - 'A'
	}
	return c
}

// String returns the FEN letter of the piece.
func (p Piece) String() string {
	return string(p.FENChar())
}

// PieceFromFEN converts a FEN letter into a coloured piece.
func PieceFromFEN(c byte) (Piece, bool) {
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
		c -= 'a' - 'A'
	}
	t, ok := PieceTypeFromLetter(c)
	if !ok {
		return Empty, false
	}
	return MakeColouredPiece(colour, t), true
}

// Rank represents a chess rank (row) - '1' to '8'.
type Rank byte

// Col represents a chess file (column) - 'a' to 'h'.
type Col byte

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase  = '1'
	ColBase   = 'a'
	FirstRank = RankBase
	LastRank  = RankBase + BoardSize - 1
	FirstCol  = ColBase
	LastCol   = ColBase + BoardSize - 1
)

// IsCol reports whether c is a file letter.
func IsCol(c byte) bool {
	return c >= FirstCol && c <= LastCol
}

// IsRank reports whether c is a rank digit.
func IsRank(c byte) bool {
	return c >= FirstRank && c <= LastRank
}

// Square indexes the board from a1 = 0 to h8 = 63.
type Square int

// OffBoard is the sentinel square used by the null move and for "no en passant".
const OffBoard Square = NumSquares

// SquareAt returns the square at the given file letter and rank digit.
func SquareAt(col Col, rank Rank) Square {
	return NewSquare(int(col-ColBase), int(rank-RankBase))
}

// NewSquare returns the square at zero-based file and rank, or OffBoard.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return OffBoard
	}
	return Square(rank*BoardSize + file)
}

// File returns the zero-based file.
func (s Square) File() int {
	return int(s) % BoardSize
}

// RankIndex returns the zero-based rank.
func (s Square) RankIndex() int {
	return int(s) / BoardSize
}

// Col returns the file letter.
func (s Square) Col() Col {
	return Col(ColBase + s.File())
}

// Rank returns the rank digit.
func (s Square) Rank() Rank {
	return Rank(RankBase + s.RankIndex())
}

// IsValid reports whether s is on the board.
func (s Square) IsValid() bool {
	return s >= 0 && s < OffBoard
}

// IsLight reports whether s is a light square (h1 is light).
func (s Square) IsLight() bool {
	return (s.File()+s.RankIndex())%2 == 1
}

// Offset returns the square df files and dr ranks away, or OffBoard.
func (s Square) Offset(df, dr int) Square {
	return NewSquare(s.File()+df, s.RankIndex()+dr)
}

// String returns the algebraic name ("e4"), or "-" for OffBoard.
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{byte(s.Col()), byte(s.Rank())})
}

// ParseSquare parses an algebraic square name.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 || !IsCol(name[0]) || !IsRank(name[1]) {
		return OffBoard, fmt.Errorf("%w: %q", errors.ErrInvalidSquare, name)
	}
	return SquareAt(Col(name[0]), Rank(name[1])), nil
}

// HashCode is the type for position hashing.
type HashCode uint64
