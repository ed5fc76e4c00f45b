package chess

// GameState classifies a position from the point of view of the side to move.
type GameState int

const (
	InPlay GameState = iota
	Check
	Checkmate
	Stalemate
	FiftyMoveDraw
	RepetitionDraw
	InsufficientMaterial
)

// String returns a readable name of the state.
func (s GameState) String() string {
	switch s {
	case InPlay:
		return "normal"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move rule"
	case RepetitionDraw:
		return "repetition"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "unknown"
}

// IsTerminal reports whether the state ends the game.
func (s GameState) IsTerminal() bool {
	return s != InPlay && s != Check
}

// IsDraw reports whether the state is a drawn ending.
func (s GameState) IsDraw() bool {
	return s.IsTerminal() && s != Checkmate
}

// GameOverKind is the coarse termination of a game.
type GameOverKind int

const (
	NotOver GameOverKind = iota
	WhiteResigned
	BlackResigned
	DrawAgreed
	Forced
)

// GameOver is the game-over status of a game. State is set when Kind is Forced.
type GameOver struct {
	Kind  GameOverKind
	State GameState
	// Winner is meaningful for checkmate only: the side that delivered it.
	Winner Colour
}

// IsOver reports whether the game has ended.
func (g GameOver) IsOver() bool {
	return g.Kind != NotOver
}

// Result returns the PGN result token.
func (g GameOver) Result() string {
	switch g.Kind {
	case WhiteResigned:
		return "0-1"
	case BlackResigned:
		return "1-0"
	case DrawAgreed:
		return "1/2-1/2"
	case Forced:
		if g.State == Checkmate {
			if g.Winner == White {
				return "1-0"
			}
			return "0-1"
		}
		return "1/2-1/2"
	}
	return "*"
}

// String describes the status.
func (g GameOver) String() string {
	switch g.Kind {
	case WhiteResigned:
		return "White resigned"
	case BlackResigned:
		return "Black resigned"
	case DrawAgreed:
		return "draw agreed"
	case Forced:
		return g.State.String()
	}
	return "in progress"
}
