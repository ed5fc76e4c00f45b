package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
)

func TestImportGame_FoolsMate(t *testing.T) {
	b, err := ImportGame("[Event \"Blunder\"]\n\n1. f3 e5 2. g4 Qh4# 0-1\n", nil)
	require.NoError(t, err)

	assert.Equal(t, 5, b.Len())
	assert.Equal(t, chess.Checkmate, b.GameState())
	over := b.GameOver()
	assert.Equal(t, chess.Forced, over.Kind)
	assert.Equal(t, chess.Black, over.Winner)

	result, _ := b.Tag(chess.ResultTag)
	assert.Equal(t, "0-1", result)
	event, _ := b.Tag(chess.EventTag)
	assert.Equal(t, "Blunder", event)
}

func TestImportGame_HistoryMirrorsMoveText(t *testing.T) {
	game := parseTestGame(t, annotatedPGN)
	b, err := Replay(game, "", nil)
	require.NoError(t, err)

	assert.Equal(t, sans(game), b.MoveHistory())
	assert.Equal(t, len(game.Moves)+1, b.Len())
}

func TestImportGame_MatchesPlayedBoard(t *testing.T) {
	imported, err := ImportGame(shortPGN, nil)
	require.NoError(t, err)

	played := board.New()
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6"} {
		_, err := played.MakeSANMove(san)
		require.NoError(t, err)
	}

	assert.Equal(t, played.PositionHashString(), imported.PositionHashString())
	assert.Equal(t, played.RecordHashString(), imported.RecordHashString())
	assert.Equal(t, engine.FEN(played.Tip()), engine.FEN(imported.Tip()))
}

func TestImportGame_VariationsIgnored(t *testing.T) {
	b, err := ImportGame(variationsPGN, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}, b.MoveHistory())
}

func TestImportGame_Empty(t *testing.T) {
	b, err := ImportGame("", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, engine.InitialFEN, engine.FEN(b.Tip()))
}

func TestImportGame_FENTag(t *testing.T) {
	pgn := `[SetUp "1"]
[FEN "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1"]

1. O-O-O Ke7 *
`
	b, err := ImportGame(pgn, nil)
	require.NoError(t, err)
	assert.Equal(t, "8/4k3/8/8/8/8/8/2KR4 w - - 2 2", engine.FEN(b.Tip()))
	assert.Equal(t, []string{"O-O-O", "Ke7"}, b.MoveHistory())
}

func TestImportGame_CastlingWithZeros(t *testing.T) {
	b, err := ImportGame("1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. 0-0 *", nil)
	require.NoError(t, err)
	assert.Equal(t, "O-O", b.LastMoveNotation())
}

func TestImportGame_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pgn   string
		wants []error
		ply   int
		text  string
	}{
		{
			name:  "malformed san",
			pgn:   "1. e4 e5 2. Nf9 *",
			wants: []error{chesserrors.ErrMoveNotFound, chesserrors.ErrNotationParse},
			ply:   3,
			text:  "Nf9",
		},
		{
			name:  "illegal san",
			pgn:   "1. e4 e5 2. Ke3 *",
			wants: []error{chesserrors.ErrMoveNotFound},
			ply:   3,
			text:  "Ke3",
		},
		{
			name:  "null move",
			pgn:   "1. e4 -- *",
			wants: []error{chesserrors.ErrMoveNotFound, chesserrors.ErrNullMove},
			ply:   2,
			text:  "--",
		},
		{
			name:  "move after mate",
			pgn:   "1. f3 e5 2. g4 Qh4# 3. a3 *",
			wants: []error{chesserrors.ErrMoveNotFound},
			ply:   5,
			text:  "a3",
		},
		{
			name:  "move after repetition",
			pgn:   "1. Nf3 Nf6 2. Ng1 Ng8 3. Nf3 Nf6 4. Ng1 Ng8 5. Nf3 *",
			wants: []error{chesserrors.ErrMoveNotFound, chesserrors.ErrGameOver},
			ply:   9,
			text:  "Nf3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ImportGame(tt.pgn, newSilentConfig())
			require.Error(t, err)
			assert.Nil(t, b)
			for _, want := range tt.wants {
				assert.ErrorIs(t, err, want)
			}

			var gerr *chesserrors.GameError
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.ply, gerr.Ply)
			assert.Equal(t, tt.text, gerr.MoveText)
			assert.Equal(t, 1, gerr.Line)
			assert.Len(t, gerr.Hash, 16)
		})
	}
}

func TestImportGame_RepetitionWithRulesDisabled(t *testing.T) {
	cfg := config.NewConfigBuilder().WithRules(0, 0).Build()
	b, err := ImportGame("1. Nf3 Nf6 2. Ng1 Ng8 3. Nf3 Nf6 4. Ng1 Ng8 5. Nf3 *", cfg)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Len())
	assert.False(t, b.GameOver().IsOver())
}

func TestImportGame_BadFENTag(t *testing.T) {
	_, err := ImportGame("[FEN \"not a fen\"]\n\n1. e4 *", newSilentConfig())
	assert.ErrorIs(t, err, chesserrors.ErrInvalidTag)
	assert.ErrorIs(t, err, chesserrors.ErrInvalidFEN)
}

func TestImportGame_ParseErrorPropagates(t *testing.T) {
	_, err := ImportGame("[Event Test]\n\n1. e4 *", newSilentConfig())
	assert.ErrorIs(t, err, chesserrors.ErrInvalidTag)
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.pgn")
	require.NoError(t, os.WriteFile(path, []byte(multiplePGN), 0o600))

	boards, err := ImportFile(path, nil)
	require.NoError(t, err)
	require.Len(t, boards, 3)

	for i, want := range []string{"Game 1", "Game 2", "Game 3"} {
		event, ok := boards[i].Tag(chess.EventTag)
		assert.True(t, ok)
		assert.Equal(t, want, event)
		assert.Equal(t, 5, boards[i].Len())
	}
}

func TestImportFile_ReportsLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pgn")
	require.NoError(t, os.WriteFile(path, []byte("[Event \"x\"]\n\n1. e4 e5\n2. Qxf7 *\n"), 0o600))

	_, err := ImportFile(path, newSilentConfig())
	var gerr *chesserrors.GameError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, path, gerr.File)
	assert.Equal(t, 4, gerr.Line)
	assert.True(t, strings.Contains(err.Error(), "Qxf7"))
}

func TestImportFile_Missing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "missing.pgn"), newSilentConfig())
	assert.ErrorIs(t, err, chesserrors.ErrFile)
}
