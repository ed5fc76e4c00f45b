package output

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

const (
	lightSquare  = "#f0d9b5"
	darkSquare   = "#b58863"
	markedSquare = "#cdd26a"
	minSquare    = 8
)

var glyphs = map[chess.Piece]string{
	chess.W(chess.King): "♔", chess.W(chess.Queen): "♕", chess.W(chess.Rook): "♖",
	chess.W(chess.Bishop): "♗", chess.W(chess.Knight): "♘", chess.W(chess.Pawn): "♙",
	chess.B(chess.King): "♚", chess.B(chess.Queen): "♛", chess.B(chess.Rook): "♜",
	chess.B(chess.Bishop): "♝", chess.B(chess.Knight): "♞", chess.B(chess.Pawn): "♟",
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG draws p from White's side as an SVG document with squares of
// squareSize pixels. The squares of the last move are highlighted.
func WriteSVG(w io.Writer, p *chess.Position, squareSize int) error {
	if squareSize < minSquare {
		return errors.Wrapf(errors.ErrInvalidConfig, "svg square size %d", squareSize)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	size := squareSize * 8
	canvas.Start(size, size)
	canvas.Title(fmt.Sprintf("%s to move", p.ToMove))

	var marked [chess.NumSquares]bool
	if m := p.LastMove; !m.IsNull() && m.From.IsValid() && m.To.IsValid() {
		marked[m.From], marked[m.To] = true, true
	}

	fontSize := squareSize * 4 / 5
	labelSize := max(squareSize/5, 6)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := chess.NewSquare(file, rank)
			x, y := file*squareSize, (7-rank)*squareSize

			fill := darkSquare
			if sq.IsLight() {
				fill = lightSquare
			}
			if marked[sq] {
				fill = markedSquare
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)

			if piece := p.Get(sq); !piece.IsEmpty() {
				canvas.Text(x+squareSize/2, y+squareSize/2, glyphs[piece],
					fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-size:%dpx", fontSize))
			}
			if rank == 0 {
				canvas.Text(x+squareSize-2, y+squareSize-2, string(rune('a'+file)),
					fmt.Sprintf("text-anchor:end;font-size:%dpx", labelSize))
			}
			if file == 0 {
				canvas.Text(x+2, y+labelSize, string(rune('1'+rank)),
					fmt.Sprintf("font-size:%dpx", labelSize))
			}
		}
	}
	canvas.End()
	return ew.err
}
