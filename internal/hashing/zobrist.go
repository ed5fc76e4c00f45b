// Package hashing computes position and record hashes and counts
// repeated positions.
package hashing

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// Zobrist keys, generated from a fixed seed so hashes are stable across runs.
var (
	zobristPiece      [2][7][chess.NumSquares]uint64
	zobristCastle     [2][3][chess.BoardSize + 1]uint64 // [colour][side][rook file 1..8]
	zobristEnPassant  [chess.BoardSize]uint64
	zobristSideToMove uint64
	zobristMoveFrom   [chess.NumSquares + 1]uint64
	zobristMoveTo     [chess.NumSquares + 1]uint64
	zobristPromotion  [7]uint64
)

func init() {
	initZobrist()
}

type prng struct {
	state uint64
}

// xorshift64*
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := chess.Black; c <= chess.White; c++ {
		for t := chess.Pawn; t <= chess.King; t++ {
			for sq := 0; sq < chess.NumSquares; sq++ {
				zobristPiece[c][t][sq] = rng.next()
			}
		}
	}
	for c := 0; c < 2; c++ {
		for side := chess.Short; side <= chess.Long; side++ {
			for file := 1; file <= chess.BoardSize; file++ {
				zobristCastle[c][side][file] = rng.next()
			}
		}
	}
	for file := 0; file < chess.BoardSize; file++ {
		zobristEnPassant[file] = rng.next()
	}
	zobristSideToMove = rng.next()
	for sq := 0; sq <= chess.NumSquares; sq++ {
		zobristMoveFrom[sq] = rng.next()
		zobristMoveTo[sq] = rng.next()
	}
	for t := chess.NoPieceType; t <= chess.King; t++ {
		zobristPromotion[t] = rng.next()
	}
}

// PositionHash hashes placement, side to move, castling rights and the
// en passant file. The en passant file only counts when a pawn of the side
// to move stands beside the pawn that just advanced, so positions that
// differ only by an unusable target still repeat.
func PositionHash(p *chess.Position) chess.HashCode {
	var h uint64
	for sq := chess.Square(0); sq < chess.OffBoard; sq++ {
		pc := p.Squares[sq]
		if pc != chess.Empty {
			h ^= zobristPiece[pc.Colour()][pc.Type()][sq]
		}
	}
	for _, c := range []chess.Colour{chess.Black, chess.White} {
		for _, side := range []chess.CastleSide{chess.Short, chess.Long} {
			if col := p.CastleRook(c, side); col != 0 {
				h ^= zobristCastle[c][side][int(col-chess.ColBase)+1]
			}
		}
	}
	if enPassantCapturable(p) {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	if p.ToMove == chess.White {
		h ^= zobristSideToMove
	}
	return chess.HashCode(h)
}

func enPassantCapturable(p *chess.Position) bool {
	if !p.EnPassant.IsValid() {
		return false
	}
	// The capturing pawn stands on the rank of the pushed pawn.
	pushed := p.EnPassant.Offset(0, -chess.ColourOffset(p.ToMove))
	capturer := chess.MakeColouredPiece(p.ToMove, chess.Pawn)
	for _, df := range []int{-1, 1} {
		if sq := pushed.Offset(df, 0); sq.IsValid() && p.Get(sq) == capturer {
			return true
		}
	}
	return false
}

// RecordHash chains prev, the record hash of the preceding history entry,
// with the position hash, the move that produced p and both clocks. Two
// entries of one history share a record hash only if the whole line
// leading to them is the same.
func RecordHash(prev chess.HashCode, p *chess.Position) chess.HashCode {
	h := uint64(prev)*0x9E3779B97F4A7C15 ^ uint64(p.PositionHash)
	m := p.LastMove
	h ^= zobristMoveFrom[m.From] ^ zobristMoveTo[m.To]>>1 ^ zobristPromotion[m.Promotion]>>2
	h ^= uint64(p.HalfmoveClock)<<48 ^ uint64(p.MoveNumber)<<32
	return chess.HashCode(mix(h))
}

// splitmix64 finalizer
func mix(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return h
}

// Stamp fills in both hashes of p; prev is the preceding history entry or nil.
func Stamp(p *chess.Position, prev *chess.Position) {
	p.PositionHash = PositionHash(p)
	var prevRecord chess.HashCode
	if prev != nil {
		prevRecord = prev.RecordHash
	}
	p.RecordHash = RecordHash(prevRecord, p)
}

// HashToString renders a hash for display.
func HashToString(h chess.HashCode) string {
	return fmt.Sprintf("%016x", uint64(h))
}
