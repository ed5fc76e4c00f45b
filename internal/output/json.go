package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags         map[string]string `json:"tags"`
	Moves        []JSONMove        `json:"moves,omitempty"`
	Result       string            `json:"result"`
	State        string            `json:"state"`
	PlyCount     int               `json:"plyCount"`
	InitialFEN   string            `json:"initialFEN,omitempty"`
	FinalFEN     string            `json:"finalFEN"`
	PositionHash string            `json:"positionHash"`
	RecordHash   string            `json:"recordHash"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a board's main line to JSON format.
func GameToJSON(b *board.Board) *JSONGame {
	tip := b.Tip()
	jg := &JSONGame{
		Tags:         copyTags(b.Tags()),
		Result:       Result(b),
		State:        b.GameOver().String(),
		InitialFEN:   startFEN(b),
		FinalFEN:     engine.FEN(tip),
		PositionHash: hashing.HashToString(tip.PositionHash),
		RecordHash:   hashing.HashToString(tip.RecordHash),
	}
	jg.Tags[chess.ResultTag] = jg.Result

	sans := b.MoveHistory()
	jg.PlyCount = len(sans)
	jg.Moves = make([]JSONMove, 0, len(sans))

	prev, err := b.StateAt(0)
	if err != nil {
		return jg
	}
	moveNum := prev.MoveNumber
	for i, san := range sans {
		next, err := b.StateAt(i + 1)
		if err != nil {
			break
		}
		jg.Moves = append(jg.Moves, convertMove(prev, next, san, moveNum))
		if prev.ToMove == chess.Black {
			moveNum++
		}
		prev = next
	}
	return jg
}

// convertMove describes the move that turned prev into next.
func convertMove(prev, next *chess.Position, san string, moveNum int) JSONMove {
	m := next.LastMove
	jm := JSONMove{
		Color: strings.ToLower(prev.ToMove.String()),
		SAN:   san,
		UCI:   m.String(),
		From:  m.From.String(),
		To:    m.To.String(),
		Piece: pieceTypeName(m.Piece.Type()),
		FEN:   engine.FEN(next),
	}
	if prev.ToMove == chess.White {
		jm.MoveNumber = moveNum
	}

	switch {
	case m.Kind == chess.EnPassantCapture:
		jm.Captured = "pawn"
	case m.IsCapture():
		jm.Captured = pieceTypeName(prev.Get(m.To).Type())
	}
	if m.IsPromotion() {
		jm.Promotion = pieceTypeName(m.Promotion)
	}
	return jm
}

// copyTags copies game tags and ensures seven tag roster has values.
func copyTags(tags map[string]string) map[string]string {
	result := make(map[string]string, len(tags)+len(chess.SevenTagRoster))
	for k, v := range tags {
		result[k] = v
	}
	for _, tag := range chess.SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	return result
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(t chess.PieceType) string {
	if t == chess.NoPieceType {
		return ""
	}
	return strings.ToLower(t.String())
}

// WriteJSON writes one board as an indented JSON object.
func WriteJSON(w io.Writer, b *board.Board) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(b))
}

// WriteJSONGames writes several boards as a JSON array under "games".
func WriteJSONGames(w io.Writer, boards []*board.Board) error {
	out := &JSONOutput{Games: make([]*JSONGame, len(boards))}
	for i, b := range boards {
		out.Games[i] = GameToJSON(b)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
