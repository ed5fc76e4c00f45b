package notation

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

func parseError(text string, i int, reason string) error {
	e := &errors.NotationError{Text: text, Index: i, Reason: reason}
	if i >= 0 && i < len(text) {
		e.Char = text[i]
	}
	return e
}

// castleText maps a castle token, check markers removed, to its side.
// Zeros are accepted alongside the letter O.
func castleText(s string) chess.CastleSide {
	switch s {
	case "O-O", "0-0":
		return chess.Short
	case "O-O-O", "0-0-0":
		return chess.Long
	}
	return chess.NoCastle
}

// Parse decodes a SAN token without position context. The run of file and
// rank characters is read positionally: two are the destination, three
// add one disambiguator (a file if it is a letter, else a rank), four add
// both.
func Parse(text string) (Notation, error) {
	var n Notation

	for i := 0; i < len(text); i++ {
		if text[i] > 0x7f {
			return n, parseError(text, i, "not ASCII")
		}
	}
	if len(text) < MinLength || len(text) > MaxLength {
		return n, parseError(text, -1, fmt.Sprintf("length %d outside %d-%d", len(text), MinLength, MaxLength))
	}

	body := strings.TrimRight(text, "+#")
	if side := castleText(body); side != chess.NoCastle {
		switch suffix := text[len(body):]; suffix {
		case "":
		case "+":
			n.Check = true
		case "#":
			n.Checkmate = true
		default:
			return n, parseError(text, len(body)+1, "duplicate check marker after castle")
		}
		n.Castle = side
		return n, nil
	}

	var piece byte
	pieceIdx := -1
	var squares []byte
	var squareIdx []int

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			if pieceIdx >= 0 {
				return n, parseError(text, i, "multiple piece letters")
			}
			piece, pieceIdx = c, i
		case c == 'x':
			if n.Capture {
				return n, parseError(text, i, "multiple capture markers")
			}
			if len(text)-i < 3 {
				return n, parseError(text, i, "no square after capture marker")
			}
			n.Capture = true
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			squares = append(squares, c)
			squareIdx = append(squareIdx, i)
		case c == '=':
			if n.Promotion != chess.NoPieceType {
				return n, parseError(text, i, "multiple promotions")
			}
			if i+1 >= len(text) {
				return n, parseError(text, i, "no promotion piece after '='")
			}
			i++
			switch text[i] {
			case 'Q', 'R', 'B', 'N':
				n.Promotion, _ = chess.PieceTypeFromLetter(text[i])
			default:
				return n, parseError(text, i, "invalid promotion piece")
			}
		case c == '+':
			if n.Check {
				return n, parseError(text, i, "multiple check markers")
			}
			n.Check = true
		case c == '#':
			if n.Checkmate {
				return n, parseError(text, i, "multiple checkmate markers")
			}
			n.Checkmate = true
		default:
			return n, parseError(text, i, "invalid character")
		}
	}

	n.Piece = chess.Pawn
	if pieceIdx >= 0 {
		t, ok := chess.PieceTypeFromLetter(piece)
		if !ok {
			return n, parseError(text, pieceIdx, "invalid piece letter")
		}
		n.Piece = t
	}

	if err := n.setSquares(text, squares, squareIdx); err != nil {
		return n, err
	}
	return n, nil
}

func (n *Notation) setSquares(text string, chars []byte, idx []int) error {
	var disFile, disRank byte
	disFileIdx, disRankIdx := -1, -1
	switch len(chars) {
	case 2:
	case 3:
		if chars[0] >= 'a' && chars[0] <= 'z' {
			disFile, disFileIdx = chars[0], idx[0]
		} else {
			disRank, disRankIdx = chars[0], idx[0]
		}
	case 4:
		disFile, disFileIdx = chars[0], idx[0]
		disRank, disRankIdx = chars[1], idx[1]
	default:
		return parseError(text, -1, fmt.Sprintf("expected 2 to 4 file and rank characters, got %d", len(chars)))
	}

	k := len(chars) - 2
	if !chess.IsCol(chars[k]) {
		return parseError(text, idx[k], "invalid destination file")
	}
	if !chess.IsRank(chars[k+1]) {
		return parseError(text, idx[k+1], "invalid destination rank")
	}
	if disFileIdx >= 0 && !chess.IsCol(disFile) {
		return parseError(text, disFileIdx, "invalid disambiguating file")
	}
	if disRankIdx >= 0 && !chess.IsRank(disRank) {
		return parseError(text, disRankIdx, "invalid disambiguating rank")
	}

	n.To = chess.SquareAt(chess.Col(chars[k]), chess.Rank(chars[k+1]))
	if disFileIdx >= 0 {
		n.DisFile = chess.Col(disFile)
	}
	if disRankIdx >= 0 {
		n.DisRank = chess.Rank(disRank)
	}
	return nil
}
