package board

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/logging"
	"github.com/lgbarn/chesscore-go/internal/notation"
)

func (b *Board) tip() *chess.Position {
	return b.states[len(b.states)-1]
}

// fail wraps err with the tip context and logs it.
func (b *Board) fail(err error, moveText string) error {
	tip := b.tip()
	gerr := &errors.GameError{
		Err:      err,
		Ply:      len(b.states),
		MoveText: moveText,
		Hash:     hashing.HashToString(tip.PositionHash),
	}
	return logging.FailTo(b.logger, gerr, "fen", engine.FEN(tip), "move", moveText, "ply", gerr.Ply)
}

// MakeMove plays m at the tip of the history, whatever the cursor shows,
// and moves the cursor to the new tip. m may be partial: a castle is found
// by its side, anything else by origin, destination and promotion. It
// returns the move as played. On failure the board is unchanged.
func (b *Board) MakeMove(m chess.Move) (chess.Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.makeMove(m, m.String())
}

func (b *Board) makeMove(m chess.Move, text string) (chess.Move, error) {
	if m.IsNull() {
		return chess.NullMove, b.fail(errors.ErrNullMove, text)
	}
	if over := b.gameOver(); over.IsOver() {
		return chess.NullMove, b.fail(fmt.Errorf("%w: %s", errors.ErrGameOver, over), text)
	}

	tip := b.tip()
	played, ok := engine.ResolveMove(tip, m)
	if !ok {
		return chess.NullMove, b.fail(errors.ErrIllegalMove, text)
	}
	next, err := engine.NextPosition(tip, played)
	if err != nil {
		return chess.NullMove, b.fail(err, text)
	}

	b.states = append(b.states, next)
	b.reps.Add(next.PositionHash)
	b.cursor = len(b.states) - 1
	b.logger.Debug("move", "move", played, "ply", b.cursor, "hash", hashing.HashToString(next.PositionHash))
	return played, nil
}

// MakeMoveByCoordinates plays the move from one square to another. A
// castle may be given as the king's destination or as the rook's square.
// promotion is only read for promotions, where NoPieceType means a queen.
func (b *Board) MakeMoveByCoordinates(from, to chess.Square, promotion chess.PieceType) (chess.Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	text := from.String() + to.String()
	if from == chess.OffBoard && to == chess.OffBoard {
		return b.makeMove(chess.NullMove, text)
	}
	if !from.IsValid() || !to.IsValid() {
		return chess.NullMove, b.fail(fmt.Errorf("%w: %w", errors.ErrIllegalMove, errors.ErrInvalidSquare), text)
	}
	m, ok := engine.FindMove(b.tip(), from, to, promotion)
	if !ok {
		if over := b.gameOver(); over.IsOver() {
			return chess.NullMove, b.fail(fmt.Errorf("%w: %s", errors.ErrGameOver, over), text)
		}
		return chess.NullMove, b.fail(errors.ErrIllegalMove, text)
	}
	return b.makeMove(m, text)
}

// MakeSANMove decodes text against the tip and plays it.
func (b *Board) MakeSANMove(text string) (chess.Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if over := b.gameOver(); over.IsOver() {
		return chess.NullMove, b.fail(fmt.Errorf("%w: %s", errors.ErrGameOver, over), text)
	}
	m, err := notation.Decode(text, b.tip())
	if err != nil {
		return chess.NullMove, b.fail(err, text)
	}
	return b.makeMove(m, text)
}

// TruncateToCursor discards every position after the cursor, so that the
// next move continues from the position being viewed. It is the only
// operation that removes history.
func (b *Board) TruncateToCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.states[b.cursor+1:] {
		b.reps.Remove(p.PositionHash)
	}
	dropped := len(b.states) - b.cursor - 1
	b.states = b.states[:b.cursor+1]
	if dropped > 0 {
		b.logger.Debug("history truncated", "dropped", dropped, "ply", b.cursor)
	}
}

// LegalMoves returns the legal moves at the tip.
func (b *Board) LegalMoves() []chess.Move {
	b.mu.Lock()
	defer b.mu.Unlock()
	return engine.LegalMoves(b.tip())
}

// LegalDestinations returns the squares the piece on from may move to at
// the tip, castles given as the king's destination.
func (b *Board) LegalDestinations(from chess.Square) []chess.Square {
	b.mu.Lock()
	defer b.mu.Unlock()
	return engine.LegalDestinations(b.tip(), from)
}

// SideToMove returns the colour to play at the tip.
func (b *Board) SideToMove() chess.Colour {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tip().ToMove
}

func (b *Board) tipState() chess.GameState {
	tip := b.tip()
	return engine.Classify(tip, engine.LegalMoves(tip), b.reps.Count(tip.PositionHash), b.rules)
}

// GameState classifies the tip position.
func (b *Board) GameState() chess.GameState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tipState()
}

func (b *Board) gameOver() chess.GameOver {
	if b.over.IsOver() {
		return b.over
	}
	state := b.tipState()
	if !state.IsTerminal() {
		return chess.GameOver{}
	}
	return chess.GameOver{Kind: chess.Forced, State: state, Winner: b.tip().ToMove.Opposite()}
}

// GameOver returns the game-over status: a resignation or agreed draw if
// one was recorded, else a forced ending if the tip is terminal.
func (b *Board) GameOver() chess.GameOver {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gameOver()
}

// Resign records that colour resigned.
func (b *Board) Resign(colour chess.Colour) error {
	kind := chess.WhiteResigned
	if colour == chess.Black {
		kind = chess.BlackResigned
	}
	return b.end(chess.GameOver{Kind: kind})
}

// AgreeDraw records a draw by agreement.
func (b *Board) AgreeDraw() error {
	return b.end(chess.GameOver{Kind: chess.DrawAgreed})
}

func (b *Board) end(status chess.GameOver) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if over := b.gameOver(); over.IsOver() {
		return b.fail(fmt.Errorf("%w: %s", errors.ErrGameOver, over), "")
	}
	b.over = status
	b.logger.Debug("game over", "status", status, "result", status.Result())
	return nil
}
