package engine_test

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	notnil "github.com/notnil/chess"
	"golang.org/x/exp/maps"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

// Legal move sets are compared against github.com/notnil/chess along
// seeded random games from positions rich in special moves.

var crossCheckStarts = []string{
	engine.InitialFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
}

func referencePosition(t *testing.T, fen string) *notnil.Position {
	t.Helper()
	opt, err := notnil.FEN(fen)
	if err != nil {
		t.Fatalf("reference FEN(%q): %v", fen, err)
	}
	return notnil.NewGame(opt).Position()
}

func moveTexts(moves []chess.Move) []string {
	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = m.String()
	}
	slices.Sort(texts)
	return texts
}

func referenceMoves(pos *notnil.Position) map[string]*notnil.Move {
	moves := make(map[string]*notnil.Move)
	for _, m := range pos.ValidMoves() {
		moves[strings.ToLower(m.String())] = m
	}
	return moves
}

// fenPrefix keeps placement, side to move and castling rights. En passant
// is left out because the two libraries differ on when to write it.
func fenPrefix(fen string) string {
	return strings.Join(strings.Fields(fen)[:3], " ")
}

func TestLegalMoves_MatchReference(t *testing.T) {
	const (
		games = 8
		plies = 60
	)

	for _, start := range crossCheckStarts {
		t.Run(start, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(7, uint64(len(start))))
			for range games {
				p := testutil.MustParseFEN(t, start)
				ref := referencePosition(t, start)

				for ply := range plies {
					ours := engine.LegalMoves(p)
					theirs := referenceMoves(ref)
					got, want := moveTexts(ours), slices.Sorted(maps.Keys(theirs))
					testutil.AssertEqual(t, got, want, "ply %d of %s", ply, engine.FEN(p))
					if len(ours) == 0 || !slices.Equal(got, want) {
						break
					}

					m := ours[rng.IntN(len(ours))]
					next, err := engine.NextPosition(p, m)
					testutil.AssertNoError(t, err, "apply %s", m)
					if err != nil {
						break
					}
					p, ref = next, ref.Update(theirs[m.String()])
					testutil.AssertEqual(t, fenPrefix(engine.FEN(p)), fenPrefix(ref.String()), "after %s", m)
				}
			}
		})
	}
}
