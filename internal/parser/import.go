package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/logging"
	"github.com/lgbarn/chesscore-go/internal/notation"
)

// Replay plays the moves of g onto a new board, starting from the FEN tag
// when there is one. All tags are copied to the board. file is used in
// error messages and may be empty.
func Replay(g *Game, file string, cfg *config.Config) (*board.Board, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	opts := []board.Option{board.WithRules(cfg.Rules.EngineRules())}

	var b *board.Board
	if fen, ok := g.Tags[chess.FENTag]; ok {
		var err error
		if b, err = board.FromFEN(fen, opts...); err != nil {
			return nil, &errors.GameError{Err: fmt.Errorf("%w: %w", errors.ErrInvalidTag, err), File: file, Line: g.StartLine}
		}
	} else {
		b = board.New(opts...)
	}
	for _, name := range g.TagOrder {
		b.SetTag(name, g.Tags[name])
	}

	for i, mt := range g.Moves {
		tip := b.Tip()
		fail := func(err error) error {
			if !errors.Is(err, errors.ErrMoveNotFound) {
				err = fmt.Errorf("%w: %w", errors.ErrMoveNotFound, err)
			}
			gerr := &errors.GameError{
				Err:      err,
				Ply:      i + 1,
				MoveText: mt.SAN,
				Hash:     hashing.HashToString(tip.PositionHash),
				File:     file,
				Line:     mt.Line,
			}
			return logging.Fail(gerr, "file", file, "line", mt.Line, "column", mt.Column)
		}

		if mt.Null {
			if _, err := b.MakeMove(chess.NullMove); err != nil {
				return nil, fail(err)
			}
			continue
		}
		m, err := notation.Decode(mt.SAN, tip)
		if err != nil {
			return nil, fail(err)
		}
		if _, err := b.MakeMove(m); err != nil {
			return nil, fail(err)
		}
	}

	logging.Default().Debug("game replayed", "file", file, "line", g.StartLine, "plies", len(g.Moves))
	return b, nil
}

// Import parses and replays every game in r.
func Import(r io.Reader, file string, cfg *config.Config) ([]*board.Board, error) {
	games, err := NewNamedParser(r, file, cfg).ParseAllGames()
	if err != nil {
		return nil, err
	}
	boards := make([]*board.Board, 0, len(games))
	for _, g := range games {
		b, err := Replay(g, file, cfg)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	logging.Default().Debug("pgn import", "file", file, "games", len(boards))
	return boards, nil
}

// ImportGame decodes PGN text holding one game. Text without a game
// yields a board at the standard start.
func ImportGame(text string, cfg *config.Config) (*board.Board, error) {
	game, err := NewParser(strings.NewReader(text), cfg).ParseGame()
	if err != nil {
		return nil, err
	}
	if game == nil {
		game = &Game{Tags: make(map[string]string)}
	}
	return Replay(game, "", cfg)
}

// ImportFile reads every game of a PGN file. Failing to read the file is
// reported as ErrFile.
func ImportFile(path string, cfg *config.Config) ([]*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, logging.Fail(fmt.Errorf("%w: %w", errors.ErrFile, err), "file", path)
	}
	defer f.Close()
	return Import(f, path, cfg)
}
