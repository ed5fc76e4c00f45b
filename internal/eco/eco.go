// Package eco classifies games by opening (Encyclopaedia of Chess
// Openings) using a PGN file of reference lines.
package eco

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/logging"
	"github.com/lgbarn/chesscore-go/internal/parser"
)

// HalfMoveLimit is the maximum distance in plies between a game position
// and a reference line reaching the same position by transposition.
const HalfMoveLimit = 6

// Tag names set by AddTags.
const (
	ECOTag          = "ECO"
	OpeningTag      = "Opening"
	VariationTag    = "Variation"
	SubVariationTag = "SubVariation"
)

// Entry is one classified reference line.
type Entry struct {
	ECOCode      string // e.g., "B33"
	Opening      string // e.g., "Sicilian"
	Variation    string // e.g., "Sveshnikov"
	SubVariation string
	// PositionHash identifies the final position of the line and
	// RecordHash the moves that reached it.
	PositionHash chess.HashCode
	RecordHash   chess.HashCode
	HalfMoves    int
}

// Classifier maps positions to the reference lines ending there.
type Classifier struct {
	entries      map[chess.HashCode][]*Entry
	maxHalfMoves int
	loaded       int
}

// NewClassifier creates an empty classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		entries:      make(map[chess.HashCode][]*Entry),
		maxHalfMoves: HalfMoveLimit,
	}
}

// LoadFile loads reference lines from a PGN file.
func (c *Classifier) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return logging.Fail(fmt.Errorf("%w: %w", errors.ErrFile, err), "file", path)
	}
	defer f.Close()
	return c.load(f, path)
}

// Load loads reference lines from PGN text. Games without an ECO tag or
// without moves are ignored.
func (c *Classifier) Load(r io.Reader) error {
	return c.load(r, "")
}

func (c *Classifier) load(r io.Reader, name string) error {
	boards, err := parser.Import(r, name, nil)
	if err != nil {
		return err
	}
	for _, b := range boards {
		c.add(b)
	}
	logging.Default().Debug("eco lines loaded", "file", name, "entries", c.loaded)
	return nil
}

func (c *Classifier) add(b *board.Board) {
	code, ok := b.Tag(ECOTag)
	if !ok || code == "" || b.Len() < 2 {
		return
	}
	tip := b.Tip()
	entry := &Entry{
		ECOCode:      code,
		PositionHash: tip.PositionHash,
		RecordHash:   tip.RecordHash,
		HalfMoves:    b.Len() - 1,
	}
	entry.Opening, _ = b.Tag(OpeningTag)
	entry.Variation, _ = b.Tag(VariationTag)
	entry.SubVariation, _ = b.Tag(SubVariationTag)

	for _, existing := range c.entries[entry.PositionHash] {
		if existing.HalfMoves == entry.HalfMoves && existing.RecordHash == entry.RecordHash {
			return
		}
	}
	c.entries[entry.PositionHash] = append(c.entries[entry.PositionHash], entry)
	c.loaded++
	c.maxHalfMoves = max(c.maxHalfMoves, entry.HalfMoves+HalfMoveLimit)
}

// Classify returns the deepest reference line matched by the game on b,
// or nil. Games from a non-standard start are compared by position only.
func (c *Classifier) Classify(b *board.Board) *Entry {
	if c.loaded == 0 {
		return nil
	}

	var best *Entry
	limit := min(b.Len()-1, c.maxHalfMoves)
	for ply := 1; ply <= limit; ply++ {
		p, err := b.StateAt(ply)
		if err != nil {
			break
		}
		if match := c.find(p, ply); match != nil {
			best = match
		}
	}
	return best
}

// find looks up a position reached after halfMoves plies. An exact line
// wins over a transposition within HalfMoveLimit.
func (c *Classifier) find(p *chess.Position, halfMoves int) *Entry {
	var possible *Entry
	for _, entry := range c.entries[p.PositionHash] {
		if entry.HalfMoves == halfMoves && entry.RecordHash == p.RecordHash {
			return entry
		}
		if abs(halfMoves-entry.HalfMoves) <= HalfMoveLimit {
			possible = entry
		}
	}
	return possible
}

// AddTags sets the ECO, Opening, Variation and SubVariation tags of b
// from its classification. It reports whether a line matched.
func (c *Classifier) AddTags(b *board.Board) bool {
	match := c.Classify(b)
	if match == nil {
		return false
	}

	b.SetTag(ECOTag, match.ECOCode)
	b.SetTag(OpeningTag, match.Opening)
	b.SetTag(VariationTag, match.Variation)
	b.SetTag(SubVariationTag, match.SubVariation)
	return true
}

// EntriesLoaded returns the number of reference lines loaded.
func (c *Classifier) EntriesLoaded() int {
	return c.loaded
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
