package chess

// MoveKind tags the variant of a Move.
type MoveKind int

const (
	NormalMove MoveKind = iota
	CaptureMove
	DoublePawnPush
	EnPassantCapture
	CastleMove
	PromotionMove
)

// String returns the name of the move kind.
func (k MoveKind) String() string {
	switch k {
	case NormalMove:
		return "normal"
	case CaptureMove:
		return "capture"
	case DoublePawnPush:
		return "double pawn push"
	case EnPassantCapture:
		return "en passant"
	case CastleMove:
		return "castle"
	case PromotionMove:
		return "promotion"
	}
	return "unknown"
}

// CastleSide distinguishes the two castles.
type CastleSide int

const (
	NoCastle CastleSide = iota
	Short
	Long
)

// String returns the SAN text of the castle.
func (s CastleSide) String() string {
	switch s {
	case Short:
		return "O-O"
	case Long:
		return "O-O-O"
	}
	return ""
}

// Move describes a single ply. For castles From and To are the king's
// origin and destination, and RookFrom is the castling rook's origin; the
// rook always lands on the f- or d-file.
type Move struct {
	Piece     Piece
	From      Square
	To        Square
	Kind      MoveKind
	Castle    CastleSide
	RookFrom  Square
	Promotion PieceType
	// PromotionCapture is set when a promotion also captures.
	PromotionCapture bool
}

// NullMove is the reserved placeholder move. It is never legal.
var NullMove = Move{From: OffBoard, To: OffBoard, RookFrom: OffBoard}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m.From == OffBoard && m.To == OffBoard
}

// IsCapture reports whether m removes an enemy piece.
func (m Move) IsCapture() bool {
	switch m.Kind {
	case CaptureMove, EnPassantCapture:
		return true
	case PromotionMove:
		return m.PromotionCapture
	}
	return false
}

// IsCastle reports whether m is a castle.
func (m Move) IsCastle() bool {
	return m.Kind == CastleMove
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Kind == PromotionMove
}

// String returns the coordinate form of the move ("e2e4", "e7e8q"),
// or "0000" for the null move.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Kind == PromotionMove {
		s += string(m.Promotion.Letter() + 'a' - 'A')
	}
	return s
}
