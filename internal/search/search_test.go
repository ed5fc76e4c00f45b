package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/testutil"
)

func TestSearch_DepthOneIsBestOnePlyEvaluation(t *testing.T) {
	p := engine.NewInitialPosition()
	eval := PieceSquare()

	var want chess.Move
	wantScore := 0
	for i, m := range engine.LegalMoves(p) {
		score := eval.Evaluate(engine.ApplyMove(p, m))
		if i == 0 || score > wantScore {
			want, wantScore = m, score
		}
	}

	res, err := NewSearcher(WithEvaluator(eval)).Search(context.Background(), p, 1)
	require.NoError(t, err)
	assert.Equal(t, want, res.Move)
	assert.Equal(t, wantScore, res.Score)
	assert.Equal(t, 1, res.Depth)
	assert.Positive(t, res.Nodes)
}

func TestSearch_IndependentOfWorkers(t *testing.T) {
	p := testutil.MustParseFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	serial, err := NewSearcher(WithWorkers(1)).Search(context.Background(), p, 2)
	require.NoError(t, err)
	parallel, err := NewSearcher(WithWorkers(8)).Search(context.Background(), p, 2)
	require.NoError(t, err)

	assert.Equal(t, serial.Move, parallel.Move)
	assert.Equal(t, serial.Score, parallel.Score)
}

func TestSearch_FindsMate(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  string
		score int
	}{
		{"back rank", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 2, "a1a8", MateScore - 1},
		{"fool's mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2", 1, "d8h4", -(MateScore - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewSearcher().Search(context.Background(), testutil.MustParseFEN(t, tt.fen), tt.depth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Move.String())
			assert.Equal(t, tt.score, res.Score)
			assert.True(t, res.IsMate())
		})
	}
}

func TestSearch_WinsMaterial(t *testing.T) {
	p := testutil.MustParseFEN(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	res, err := NewSearcher(WithEvaluator(Material())).Search(context.Background(), p, 2)
	require.NoError(t, err)
	assert.Equal(t, "d1d5", res.Move.String())
	assert.Equal(t, PieceValue(chess.Rook), res.Score)
}

func TestSearch_Errors(t *testing.T) {
	s := NewSearcher()

	_, err := s.Search(context.Background(), engine.NewInitialPosition(), 0)
	assert.ErrorIs(t, err, chesserrors.ErrInvalidDepth)

	mated := testutil.MustParseFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	_, err = s.Search(context.Background(), mated, 2)
	assert.ErrorIs(t, err, chesserrors.ErrNoLegalMoves)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Search(ctx, engine.NewInitialPosition(), 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_DoesNotModifyPosition(t *testing.T) {
	p := engine.NewInitialPosition()
	before := p.Clone()
	_, err := NewSearcher().Search(context.Background(), p, 2)
	require.NoError(t, err)
	assert.True(t, p.Equal(before))
	assert.Equal(t, before.PositionHash, p.PositionHash)
}

func TestEvaluators(t *testing.T) {
	start := engine.NewInitialPosition()
	assert.Equal(t, 0, Material().Evaluate(start))
	assert.Equal(t, 0, PieceSquare().Evaluate(start), "the start position is symmetric")

	upAKnight := testutil.MustParseFEN(t, "r1bqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.Equal(t, PieceValue(chess.Knight), Material().Evaluate(upAKnight))

	centre := testutil.MustParseFEN(t, "4k3/8/8/8/4N3/8/8/4K3 w - - 0 1")
	rim := testutil.MustParseFEN(t, "4k3/8/8/8/N7/8/8/4K3 w - - 0 1")
	assert.Greater(t, PieceSquare().Evaluate(centre), PieceSquare().Evaluate(rim))

	constant := EvaluatorFunc(func(*chess.Position) int { return 7 })
	assert.Equal(t, 7, constant.Evaluate(start))
}
