package chess

// Position is one snapshot of a game: the placement, the side to move,
// castling rights, the en passant target, the clocks, the move that
// produced it and its two hashes. Positions are treated as immutable once
// they are stored in a game's history; use Clone before changing one.
type Position struct {
	Squares [NumSquares]Piece
	ToMove  Colour

	// Castling rights hold the file of the castling rook, or 0 when the
	// right is gone. Files rather than flags keep Chess960 representable.
	WKingCastle  Col
	WQueenCastle Col
	BKingCastle  Col
	BQueenCastle Col

	// EnPassant is the square behind a pawn that just advanced two ranks,
	// or OffBoard.
	EnPassant     Square
	HalfmoveClock int
	MoveNumber    int

	// LastMove is NullMove for positions not reached by a move.
	LastMove Move

	PositionHash HashCode
	RecordHash   HashCode

	// Chess960 selects Shredder castling notation and 960 castling rules.
	Chess960 bool

	WKingSquare Square
	BKingSquare Square
}

// NewPosition returns an empty board with White to move.
func NewPosition() *Position {
	return &Position{
		ToMove:      White,
		EnPassant:   OffBoard,
		MoveNumber:  1,
		LastMove:    NullMove,
		WKingSquare: OffBoard,
		BKingSquare: OffBoard,
	}
}

// Get returns the piece on sq.
func (p *Position) Get(sq Square) Piece {
	if !sq.IsValid() {
		return Empty
	}
	return p.Squares[sq]
}

// Set places piece on sq, keeping the king squares current.
func (p *Position) Set(sq Square, piece Piece) {
	if !sq.IsValid() {
		return
	}
	old := p.Squares[sq]
	if old.Type() == King {
		if old.Colour() == White && p.WKingSquare == sq {
			p.WKingSquare = OffBoard
		} else if old.Colour() == Black && p.BKingSquare == sq {
			p.BKingSquare = OffBoard
		}
	}
	p.Squares[sq] = piece
	if piece.Type() == King {
		if piece.Colour() == White {
			p.WKingSquare = sq
		} else {
			p.BKingSquare = sq
		}
	}
}

// KingSquare returns the square of colour's king, or OffBoard.
func (p *Position) KingSquare(colour Colour) Square {
	if colour == White {
		return p.WKingSquare
	}
	return p.BKingSquare
}

// CastleRook returns the castling rook file for colour and side, 0 if unavailable.
func (p *Position) CastleRook(colour Colour, side CastleSide) Col {
	switch {
	case colour == White && side == Short:
		return p.WKingCastle
	case colour == White && side == Long:
		return p.WQueenCastle
	case colour == Black && side == Short:
		return p.BKingCastle
	case colour == Black && side == Long:
		return p.BQueenCastle
	}
	return 0
}

// SetCastleRook sets the castling rook file for colour and side.
func (p *Position) SetCastleRook(colour Colour, side CastleSide, col Col) {
	switch {
	case colour == White && side == Short:
		p.WKingCastle = col
	case colour == White && side == Long:
		p.WQueenCastle = col
	case colour == Black && side == Short:
		p.BKingCastle = col
	case colour == Black && side == Long:
		p.BQueenCastle = col
	}
}

// ClearCastling removes both castling rights of colour.
func (p *Position) ClearCastling(colour Colour) {
	p.SetCastleRook(colour, Short, 0)
	p.SetCastleRook(colour, Long, 0)
}

// HasCastlingRights reports whether any castling right remains.
func (p *Position) HasCastlingRights() bool {
	return p.WKingCastle != 0 || p.WQueenCastle != 0 || p.BKingCastle != 0 || p.BQueenCastle != 0
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// Equal reports whether two positions agree on placement, side to move,
// castling rights, en passant target and both clocks.
func (p *Position) Equal(o *Position) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Squares == o.Squares &&
		p.ToMove == o.ToMove &&
		p.WKingCastle == o.WKingCastle &&
		p.WQueenCastle == o.WQueenCastle &&
		p.BKingCastle == o.BKingCastle &&
		p.BQueenCastle == o.BQueenCastle &&
		p.EnPassant == o.EnPassant &&
		p.HalfmoveClock == o.HalfmoveClock &&
		p.MoveNumber == o.MoveNumber
}

// Pieces returns the squares holding pieces of colour, in ascending order.
func (p *Position) Pieces(colour Colour) []Square {
	var out []Square
	for sq := Square(0); sq < OffBoard; sq++ {
		pc := p.Squares[sq]
		if pc != Empty && pc.Colour() == colour {
			out = append(out, sq)
		}
	}
	return out
}

// Ply returns the number of half-moves played since move one, White's first.
func (p *Position) Ply() int {
	ply := (p.MoveNumber - 1) * 2
	if p.ToMove == Black {
		ply++
	}
	return ply
}
