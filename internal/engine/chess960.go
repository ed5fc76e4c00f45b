package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// StandardChess960Index is the Chess960 number of the standard start.
const StandardChess960Index = 518

// knightPlacements lists the two knight slots among the five squares left
// after the bishops and queen are placed, indexed by the knight digit of
// the Scharnagl number.
var knightPlacements = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4}, {1, 2},
	{1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
}

// Chess960BackRank returns the back rank arrangement of start position n,
// numbered 0 to 959 by the Scharnagl scheme.
func Chess960BackRank(n int) ([chess.BoardSize]chess.PieceType, error) {
	var rank [chess.BoardSize]chess.PieceType
	if n < 0 || n >= 960 {
		return rank, fmt.Errorf("%w: chess960 number %d out of range 0-959", errors.ErrInvalidPosition, n)
	}

	rank[2*(n%4)+1] = chess.Bishop
	n /= 4
	rank[2*(n%4)] = chess.Bishop
	n /= 4
	placeOnEmpty(&rank, n%6, chess.Queen)
	n /= 6

	knights := knightPlacements[n]
	// Place the later knight first so the earlier index is unaffected.
	placeOnEmpty(&rank, knights[1], chess.Knight)
	placeOnEmpty(&rank, knights[0], chess.Knight)

	placeOnEmpty(&rank, 0, chess.Rook)
	placeOnEmpty(&rank, 0, chess.King)
	placeOnEmpty(&rank, 0, chess.Rook)
	return rank, nil
}

// placeOnEmpty puts t on the idx-th empty file.
func placeOnEmpty(rank *[chess.BoardSize]chess.PieceType, idx int, t chess.PieceType) {
	for file := range rank {
		if rank[file] != chess.NoPieceType {
			continue
		}
		if idx == 0 {
			rank[file] = t
			return
		}
		idx--
	}
}

// NewChess960Position returns the hashed start position number n with full
// castling rights.
func NewChess960Position(n int) (*chess.Position, error) {
	back, err := Chess960BackRank(n)
	if err != nil {
		return nil, err
	}

	p := chess.NewPosition()
	for file, t := range back {
		p.Set(chess.NewSquare(file, 0), chess.W(t))
		p.Set(chess.NewSquare(file, 1), chess.W(chess.Pawn))
		p.Set(chess.NewSquare(file, 6), chess.B(chess.Pawn))
		p.Set(chess.NewSquare(file, 7), chess.B(t))
	}

	king := p.KingSquare(chess.White)
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		p.SetCastleRook(colour, chess.Short, outermostRook(p, chess.White, king, 1))
		p.SetCastleRook(colour, chess.Long, outermostRook(p, chess.White, king, -1))
	}
	p.Chess960 = true

	hashing.Stamp(p, nil)
	return p, nil
}

// NewRandomChess960Position draws a start position from r and returns it
// with its number.
func NewRandomChess960Position(r *rand.Rand) (*chess.Position, int) {
	n := r.IntN(960)
	p, err := NewChess960Position(n)
	if err != nil {
		panic("engine: chess960 number out of range: " + err.Error())
	}
	return p, n
}

// IsChess960Position returns true if the king or a castling rook stands
// where standard chess never has it.
func IsChess960Position(p *chess.Position) bool {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		short := p.CastleRook(colour, chess.Short)
		long := p.CastleRook(colour, chess.Long)
		if short == 0 && long == 0 {
			continue
		}
		king := p.KingSquare(colour)
		if !king.IsValid() || king.Col() != 'e' {
			return true
		}
		if (short != 0 && short != 'h') || (long != 0 && long != 'a') {
			return true
		}
	}
	return false
}
