// Package output writes boards as PGN, JSON and SVG diagrams.
package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
// A maximum line length of zero or less disables wrapping. The first
// write error is kept and later writes are dropped.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.maxLineLength > 0 && o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// Result returns the result token for b: the game-over status when the
// game has ended, else a decisive or drawn Result tag, else "*".
func Result(b *board.Board) string {
	if over := b.GameOver(); over.IsOver() {
		return over.Result()
	}
	if r, ok := b.Tag(chess.ResultTag); ok {
		switch r {
		case "1-0", "0-1", "1/2-1/2":
			return r
		}
	}
	return "*"
}

// startFEN returns the FEN of the first state when it is not the
// standard starting position, else "".
func startFEN(b *board.Board) string {
	start, err := b.StateAt(0)
	if err != nil {
		return ""
	}
	if fen := engine.FEN(start); fen != engine.InitialFEN {
		return fen
	}
	return ""
}

// WriteTags writes the seven tag roster, with "?" for missing values,
// then SetUp and FEN for a non-standard start, then the remaining tags
// sorted by name.
func WriteTags(w io.Writer, b *board.Board) error {
	tags := b.Tags()
	result := Result(b)

	var sb strings.Builder
	for _, tag := range chess.SevenTagRoster {
		value, ok := tags[tag]
		if tag == chess.ResultTag {
			value, ok = result, true
		}
		if !ok || value == "" {
			value = "?"
		}
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}
	if fen := startFEN(b); fen != "" {
		fmt.Fprintf(&sb, "[%s \"1\"]\n", chess.SetUpTag)
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", chess.FENTag, fen)
	}
	for _, tag := range slices.Sorted(maps.Keys(tags)) {
		if chess.IsSevenTagRosterTag(tag) || tag == chess.FENTag || tag == chess.SetUpTag {
			continue
		}
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", tag, escapeTagValue(tags[tag]))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteMovetext writes the numbered main line and the result, wrapped
// at maxLineLength.
func WriteMovetext(w io.Writer, b *board.Board, maxLineLength int) error {
	ow := NewOutputWriter(w, maxLineLength)

	start, err := b.StateAt(0)
	if err != nil {
		return err
	}
	moveNum := start.MoveNumber
	isWhite := start.ToMove == chess.White

	for i, san := range b.MoveHistory() {
		switch {
		case isWhite:
			ow.Write(fmt.Sprintf("%d.", moveNum))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(san)
		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}
	ow.Write(Result(b))
	ow.NewLine()
	return ow.Err()
}

// WritePGN writes b as a PGN game: tags, a blank line, the movetext and
// a blank line.
func WritePGN(w io.Writer, b *board.Board, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := WriteTags(w, b); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if err := WriteMovetext(w, b, cfg.Output.MaxLineLength); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// PGN returns b as PGN text.
func PGN(b *board.Board, cfg *config.Config) string {
	var sb strings.Builder
	_ = WritePGN(&sb, b, cfg)
	return sb.String()
}
