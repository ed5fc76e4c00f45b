// Package engine implements the chess rules: move generation and
// application, check detection, game state classification, FEN and
// Chess960 set-up.
package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// Movement directions as (file, rank) deltas.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs     = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// backRank returns the zero-based home rank of colour.
func backRank(colour chess.Colour) int {
	if colour == chess.White {
		return 0
	}
	return chess.BoardSize - 1
}

// promotionRank returns the zero-based rank where colour's pawns promote.
func promotionRank(colour chess.Colour) int {
	return backRank(colour.Opposite())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
