package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/parser"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

func play(t *testing.T, b *board.Board, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := b.MakeSANMove(m); err != nil {
			t.Fatalf("MakeSANMove(%q): %v", m, err)
		}
	}
}

func fromFEN(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

// TestWritePGN_FoolsMate verifies the full PGN layout
func TestWritePGN_FoolsMate(t *testing.T) {
	b := board.New()
	b.SetTag(chess.EventTag, "Test")
	play(t, b, "f3", "e5", "g4", "Qh4#")

	want := `[Event "Test"]
[Site "?"]
[Date "?"]
[Round "?"]
[White "?"]
[Black "?"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1

`
	testutil.AssertEqual(t, PGN(b, nil), want)
}

func TestWriteTags_ExtraTagsSorted(t *testing.T) {
	b := board.New()
	b.SetTag("Opening", "Ruy Lopez")
	b.SetTag("ECO", "C60")
	b.SetTag("Annotator", "Nobody")
	b.SetTag(chess.WhiteTag, `A "B" C\D`)

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteTags(&buf, b))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, lines[4], `[White "A \"B\" C\\D"]`)
	testutil.AssertEqual(t, lines[7:], []string{
		`[Annotator "Nobody"]`,
		`[ECO "C60"]`,
		`[Opening "Ruy Lopez"]`,
	})
}

func TestWritePGN_NonStandardStart(t *testing.T) {
	b := fromFEN(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	play(t, b, "Kd2")

	got := PGN(b, nil)
	testutil.AssertContains(t, got, "[Result \"*\"]\n[SetUp \"1\"]\n[FEN \"4k3/8/8/8/8/8/8/R3K3 w Q - 0 1\"]\n")
	testutil.AssertContains(t, got, "\n1. Kd2 *\n")
}

func TestWritePGN_StandardStartHasNoFEN(t *testing.T) {
	b := board.New()
	b.SetTag(chess.FENTag, "stale")
	play(t, b, "e4")

	got := PGN(b, nil)
	testutil.AssertNotContains(t, got, "FEN")
	testutil.AssertNotContains(t, got, "SetUp")
}

func TestWriteMovetext_BlackFirst(t *testing.T) {
	b := fromFEN(t, "4k3/4p3/8/8/8/8/4P3/4K3 b - - 0 12")
	play(t, b, "Kd7", "Kd2")

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteMovetext(&buf, b, 80))
	testutil.AssertEqual(t, buf.String(), "12... Kd7 13. Kd2 *\n")
}

func TestWriteMovetext_Wrapping(t *testing.T) {
	b := board.New()
	play(t, b, "e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6")

	tests := []struct {
		name   string
		length int
		want   string
	}{
		{"wrapped", 20, "1. e4 e5 2. Nf3 Nc6\n3. Bb5 a6 4. Ba4 Nf6\n*\n"},
		{"unlimited", 0, "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6 *\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			testutil.AssertNoError(t, WriteMovetext(&buf, b, tt.length))
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}

	cfg := config.NewConfigBuilder().WithMaxLineLength(20).Build()
	testutil.AssertContains(t, PGN(b, cfg), "1. e4 e5 2. Nf3 Nc6\n3. Bb5")
}

func TestResult(t *testing.T) {
	b := board.New()
	testutil.AssertEqual(t, Result(b), "*")

	b.SetTag(chess.ResultTag, "1/2-1/2")
	testutil.AssertEqual(t, Result(b), "1/2-1/2")

	b.SetTag(chess.ResultTag, "?")
	testutil.AssertEqual(t, Result(b), "*")

	testutil.AssertNoError(t, b.Resign(chess.White))
	testutil.AssertEqual(t, Result(b), "0-1")
}

func TestWritePGN_Chess960(t *testing.T) {
	b, err := board.NewChess960Index(0)
	testutil.AssertNoError(t, err)

	got := PGN(b, nil)
	testutil.AssertContains(t, got, `[SetUp "1"]`)
	testutil.AssertContains(t, got, `[Variant "Chess960"]`)
	testutil.AssertContains(t, got, `[FEN "bbqnnrkr/pppppppp/8/8/8/8/PPPPPPPP/BBQNNRKR w KQkq - 0 1"]`)
}

func TestWritePGN_ImportRoundTrip(t *testing.T) {
	b := fromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	b.SetTag(chess.WhiteTag, "Alpha")
	play(t, b, "O-O", "O-O-O", "Rf7", "Rd2")

	imported, err := parser.ImportGame(PGN(b, nil), nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, imported.RecordHashString(), b.RecordHashString())
	testutil.AssertEqual(t, imported.MoveHistory(), b.MoveHistory())
	white, _ := imported.Tag(chess.WhiteTag)
	testutil.AssertEqual(t, white, "Alpha")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePGN_WriteError(t *testing.T) {
	b := board.New()
	play(t, b, "e4")
	testutil.AssertError(t, WritePGN(failingWriter{}, b, nil))
	testutil.AssertError(t, WriteMovetext(failingWriter{}, b, 80))
}

func TestGameToJSON(t *testing.T) {
	b := board.New()
	b.SetTag(chess.EventTag, "JSON")
	play(t, b, "e4", "d5", "exd5")

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteJSON(&buf, b))

	var got JSONGame
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &got))

	testutil.AssertEqual(t, got.PlyCount, 3)
	testutil.AssertEqual(t, got.Result, "*")
	testutil.AssertEqual(t, got.State, "in progress")
	testutil.AssertEqual(t, got.Tags[chess.EventTag], "JSON")
	testutil.AssertEqual(t, got.Tags[chess.SiteTag], "?")
	testutil.AssertEqual(t, got.InitialFEN, "")
	testutil.AssertEqual(t, got.FinalFEN, "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")
	testutil.AssertEqual(t, got.PositionHash, b.PositionHashString())

	testutil.AssertEqual(t, got.Moves[1], JSONMove{
		Color: "black",
		SAN:   "d5",
		UCI:   "d7d5",
		From:  "d7",
		To:    "d5",
		Piece: "pawn",
		FEN:   "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
	})
	capture := got.Moves[2]
	testutil.AssertEqual(t, capture.MoveNumber, 2)
	testutil.AssertEqual(t, capture.Color, "white")
	testutil.AssertEqual(t, capture.Captured, "pawn")
	testutil.AssertEqual(t, capture.UCI, "e4d5")
}

func TestGameToJSON_Promotion(t *testing.T) {
	b := fromFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	play(t, b, "a8=Q+")

	jg := GameToJSON(b)
	testutil.AssertEqual(t, jg.InitialFEN, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	testutil.AssertEqual(t, jg.Moves[0].Promotion, "queen")
	testutil.AssertEqual(t, jg.Moves[0].UCI, "a7a8q")
	testutil.AssertEqual(t, jg.Moves[0].MoveNumber, 1)
}

func TestGameWriters(t *testing.T) {
	one, two := board.New(), board.New()
	play(t, two, "d4")

	var buf bytes.Buffer
	w := NewGameWriter("json", &buf, nil)
	testutil.AssertNoError(t, w.WriteGame(one))
	testutil.AssertNoError(t, w.WriteGame(two))
	testutil.AssertEqual(t, buf.Len(), 0)
	testutil.AssertNoError(t, w.Close())

	var out JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &out))
	testutil.AssertEqual(t, len(out.Games), 2)
	testutil.AssertEqual(t, out.Games[1].Moves[0].SAN, "d4")

	buf.Reset()
	testutil.AssertNoError(t, w.Close())
	testutil.AssertEqual(t, buf.Len(), 0)

	w = NewGameWriter("pgn", &buf, nil)
	testutil.AssertNoError(t, w.WriteGame(two))
	testutil.AssertNoError(t, w.Close())
	testutil.AssertContains(t, buf.String(), "1. d4 *")
}

func TestWriteSVG(t *testing.T) {
	b := board.New()
	play(t, b, "e4")

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteSVG(&buf, b.Tip(), 45))
	got := buf.String()

	testutil.AssertContains(t, got, `width="360" height="360"`)
	testutil.AssertContains(t, got, "Black to move")
	testutil.AssertEqual(t, strings.Count(got, "♙"), 8)
	testutil.AssertEqual(t, strings.Count(got, "♚"), 1)
	testutil.AssertEqual(t, strings.Count(got, markedSquare), 2)
	testutil.AssertTrue(t, strings.HasSuffix(strings.TrimSpace(got), "</svg>"))
}

func TestWriteSVG_Errors(t *testing.T) {
	p := board.New().Tip()

	err := WriteSVG(&bytes.Buffer{}, p, 4)
	testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidConfig)

	testutil.AssertError(t, WriteSVG(failingWriter{}, p, 45))
}
