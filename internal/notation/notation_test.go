package notation

import (
	"errors"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

func mustFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	p, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return p
}

// playSAN plays SAN moves from p and returns the final position.
func playSAN(t *testing.T, p *chess.Position, moves ...string) *chess.Position {
	t.Helper()
	for _, text := range moves {
		m, err := Decode(text, p)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", text, err)
		}
		p, err = engine.NextPosition(p, m)
		if err != nil {
			t.Fatalf("NextPosition(%q) error: %v", text, err)
		}
	}
	return p
}

// encodeAll renders every legal move of p keyed by its SAN.
func encodeAll(t *testing.T, p *chess.Position) map[string]chess.Move {
	t.Helper()
	out := make(map[string]chess.Move)
	for _, m := range engine.LegalMoves(p) {
		text, err := Encode(p, m)
		if err != nil {
			t.Fatalf("Encode(%s) error: %v", m, err)
		}
		if prev, dup := out[text]; dup {
			t.Errorf("%s and %s both render as %q", prev, m, text)
		}
		out[text] = m
	}
	return out
}

func TestSAN_RoundTrip(t *testing.T) {
	fens := []string{
		engine.InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			p := mustFEN(t, fen)
			for text, m := range encodeAll(t, p) {
				got, err := Decode(text, p)
				if err != nil {
					t.Errorf("Decode(%q) error: %v", text, err)
					continue
				}
				testutil.AssertEqual(t, got, m, "Decode(%q)", text)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		to   string
		want string
	}{
		{"pawn push", engine.InitialFEN, "e2", "e4", "e4"},
		{"knight", engine.InitialFEN, "g1", "f3", "Nf3"},
		{"pawn capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4", "d5", "exd5"},
		{"en passant", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", "e5", "f6", "exf6"},
		{"short castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1", "g1", "O-O"},
		{"long castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1", "c1", "O-O-O"},
		{"castle with check", "5k2/8/8/8/8/8/8/4K2R w K - 0 1", "e1", "g1", "O-O+"},
		{"promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7", "a8", "a8=Q+"},
		{"promotion capture", "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7", "b8", "axb8=Q+"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1", "a8", "Ra8+"},
		{"mate", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1", "a8", "Ra8#"},
		{"files differ", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "b1", "d2", "Nbd2"},
		{"same file", "4k3/8/8/N7/8/8/8/N3K3 w - - 0 1", "a1", "b3", "N1b3"},
		{"file and rank", "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1", "a1", "b2", "Qa1b2"},
		{"rank when file shared", "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1", "a3", "b2", "Q3b2"},
		{"file when rank shared", "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1", "c1", "b2", "Qcb2"},
		{"capture disambiguated", "4k3/8/8/8/8/8/3r4/1N1K1N2 w - - 0 1", "b1", "d2", "Nbxd2"},
		{"pinned twin needs none", "4k3/8/8/3b4/8/1N3N2/8/7K w - - 0 1", "b3", "d2", "Nd2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustFEN(t, tt.fen)
			from, _ := chess.ParseSquare(tt.from)
			to, _ := chess.ParseSquare(tt.to)
			m, ok := engine.FindMove(p, from, to, chess.NoPieceType)
			if !ok {
				t.Fatalf("%s%s is not legal", tt.from, tt.to)
			}
			got, err := Encode(p, m)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_KnightsNeverCollide(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1")
	texts := encodeAll(t, p)
	if _, ok := texts["Nbd2"]; !ok {
		t.Error("missing Nbd2")
	}
	if _, ok := texts["Nfd2"]; !ok {
		t.Error("missing Nfd2")
	}
	if _, ok := texts["Nd2"]; ok {
		t.Error("Nd2 must be disambiguated")
	}
}

func TestEncode_Illegal(t *testing.T) {
	p := engine.NewInitialPosition()
	e2, _ := chess.ParseSquare("e2")
	e5, _ := chess.ParseSquare("e5")
	_, err := Encode(p, chess.Move{Piece: chess.W(chess.Pawn), From: e2, To: e5, RookFrom: chess.OffBoard})
	if !errors.Is(err, chesserrors.ErrIllegalMove) {
		t.Errorf("Encode(illegal) error = %v, want ErrIllegalMove", err)
	}
	if _, err := Encode(p, chess.NullMove); !errors.Is(err, chesserrors.ErrIllegalMove) {
		t.Errorf("Encode(null) error = %v, want ErrIllegalMove", err)
	}
}

func TestFoolsMate(t *testing.T) {
	p := playSAN(t, engine.NewInitialPosition(), "f3", "e5", "g4")

	m, err := Decode("Qh4#", p)
	if err != nil {
		t.Fatalf("Decode(Qh4#) error: %v", err)
	}
	text, err := Encode(p, m)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Qh4#" {
		t.Errorf("Encode() = %q, want Qh4#", text)
	}

	mated, err := engine.NextPosition(p, m)
	if err != nil {
		t.Fatal(err)
	}
	if got := engine.ClassifyPosition(mated, engine.DefaultRules()); got != chess.Checkmate {
		t.Errorf("state = %v, want checkmate", got)
	}
}

func TestDecode_Lenient(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		text string
		want string // coordinate form
	}{
		{"missing check marker", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "Ra8", "a1a8"},
		{"capture without x", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "ed5", "e4d5"},
		{"explicit pawn letter", engine.InitialFEN, "Pe4", "e2e4"},
		{"unneeded disambiguation", engine.InitialFEN, "Ngf3", "g1f3"},
		{"zero castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "0-0-0", "e1c1"},
		{"rank disambiguation", "4k3/8/8/N7/8/8/8/N3K3 w - - 0 1", "N5b3", "a5b3"},
		{"underpromotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a8=N", "a7a8n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.text, mustFEN(t, tt.fen))
			if err != nil {
				t.Fatalf("Decode(%q) error: %v", tt.text, err)
			}
			if m.String() != tt.want {
				t.Errorf("Decode(%q) = %s, want %s", tt.text, m, tt.want)
			}
		})
	}
}

func TestDecode_NotFound(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		text string
	}{
		{"no such knight move", engine.InitialFEN, "Nf4"},
		{"pawn too far", engine.InitialFEN, "e5"},
		{"capture of empty square", engine.InitialFEN, "exd3"},
		{"ambiguous knights", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "Nd2"},
		{"ambiguous promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a8"},
		{"wrong disambiguation", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "Ncd2"},
		{"castle unavailable", "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", "O-O"},
		{"terminal position", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", "e4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text, mustFEN(t, tt.fen))
			if !errors.Is(err, chesserrors.ErrMoveNotFound) {
				t.Errorf("Decode(%q) error = %v, want ErrMoveNotFound", tt.text, err)
			}
		})
	}
}

func TestDecode_TerminalWrapsNoLegalMoves(t *testing.T) {
	p := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	_, err := Decode("e4", p)
	if !errors.Is(err, chesserrors.ErrNoLegalMoves) {
		t.Errorf("error = %v, want it to wrap ErrNoLegalMoves", err)
	}
}
