package output

import (
	"io"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/config"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(b *board.Board) error

	// Close writes any pending output.
	Close() error
}

// PGNWriter writes games in PGN format as they arrive.
type PGNWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &PGNWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(b *board.Board) error {
	return WritePGN(pw.w, b, pw.cfg)
}

// Close is a no-op for PGN as it writes immediately.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter buffers games and writes them as a JSON array on Close.
type JSONWriter struct {
	w     io.Writer
	games []*board.Board
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteGame buffers a game for JSON output.
func (jw *JSONWriter) WriteGame(b *board.Board) error {
	jw.games = append(jw.games, b)
	return nil
}

// Close writes all buffered games as a JSON array.
func (jw *JSONWriter) Close() error {
	if len(jw.games) == 0 {
		return nil
	}
	err := WriteJSONGames(jw.w, jw.games)
	jw.games = jw.games[:0]
	return err
}

// NewGameWriter returns the writer for format "pgn" or "json".
func NewGameWriter(format string, w io.Writer, cfg *config.Config) GameWriter {
	if format == "json" {
		return NewJSONWriter(w)
	}
	return NewPGNWriter(w, cfg)
}
