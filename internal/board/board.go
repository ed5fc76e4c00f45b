// Package board holds a game as the sequence of positions reached from its
// start, with a cursor for browsing and the game-over status. A Board is
// safe for concurrent use: every operation takes the board lock for its own
// duration only.
package board

import (
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/logging"
)

// Board is a game history. states[0] is the start position and every later
// entry was produced by one move from the entry before it.
type Board struct {
	mu     sync.Mutex
	states []*chess.Position
	cursor int
	// over records resignation or an agreed draw. Endings by rule are
	// derived from the tip position instead.
	over   chess.GameOver
	tags   map[string]string
	rules  engine.Rules
	reps   *hashing.RepetitionCounter
	logger *log.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithRules sets the draw rule thresholds. The zero Rules disables the
// fifty-move and repetition draws.
func WithRules(r engine.Rules) Option {
	return func(b *Board) {
		b.rules = r
	}
}

// WithLogger sets the logger failures are reported on.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

func newBoard(start *chess.Position, opts []Option) *Board {
	b := &Board{
		states: []*chess.Position{start},
		tags:   make(map[string]string),
		rules:  engine.DefaultRules(),
		reps:   hashing.NewRepetitionCounter(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.reps.Add(start.PositionHash)
	if start.Chess960 {
		b.tags[chess.VariantTag] = "Chess960"
	}
	return b
}

// New returns a board at the standard starting position.
func New(opts ...Option) *Board {
	return newBoard(engine.NewInitialPosition(), opts)
}

// NewChess960Index returns a board at Chess960 starting arrangement n.
func NewChess960Index(n int, opts ...Option) (*Board, error) {
	p, err := engine.NewChess960Position(n)
	if err != nil {
		return nil, logging.Fail(err, "index", n)
	}
	return newBoard(p, opts), nil
}

// NewChess960 returns a board at a Chess960 arrangement drawn from r.
func NewChess960(r *rand.Rand, opts ...Option) *Board {
	p, n := engine.NewRandomChess960Position(r)
	b := newBoard(p, opts)
	b.logger.Debug("new chess960 game", "index", n)
	return b
}

// FromFEN returns a board starting at the position fen describes. Beyond
// FEN syntax the position must have one king per side, no pawn on a back
// rank and the side not to move out of check.
func FromFEN(fen string, opts ...Option) (*Board, error) {
	p, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, logging.Fail(err, "fen", fen)
	}
	if err := engine.ValidatePosition(p); err != nil {
		return nil, logging.Fail(err, "fen", fen)
	}
	return newBoard(p, opts), nil
}

// FromPosition returns a board starting at a copy of p, validated as in
// FromFEN. The copy's hashes are recomputed.
func FromPosition(p *chess.Position, opts ...Option) (*Board, error) {
	start := p.Clone()
	start.LastMove = chess.NullMove
	if err := engine.ValidatePosition(start); err != nil {
		return nil, logging.Fail(err, "fen", engine.FEN(start))
	}
	hashing.Stamp(start, nil)
	return newBoard(start, opts), nil
}

// Tags returns a copy of the game's tag pairs.
func (b *Board) Tags() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	tags := make(map[string]string, len(b.tags))
	for k, v := range b.tags {
		tags[k] = v
	}
	return tags
}

// Tag returns the value of one tag pair.
func (b *Board) Tag(name string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.tags[name]
	return v, ok
}

// SetTag sets a tag pair. An empty value removes it.
func (b *Board) SetTag(name, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if value == "" {
		delete(b.tags, name)
		return
	}
	b.tags[name] = value
}

// Rules returns the draw rules the board classifies with.
func (b *Board) Rules() engine.Rules {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rules
}
