// Package parser provides PGN lexing and parsing, and replays parsed games
// onto boards.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	EOFToken TokenType = iota
	TagStart
	TagEnd
	SymbolToken // tag name or move text
	StringToken
	CommentToken
	NAGToken
	MoveNumber
	RAVStart
	RAVEnd
	TerminatingResult
	NullMoveToken
)

var tokenTypeNames = [...]string{
	EOFToken:          "EOF",
	TagStart:          "[",
	TagEnd:            "]",
	SymbolToken:       "symbol",
	StringToken:       "string",
	CommentToken:      "comment",
	NAGToken:          "NAG",
	MoveNumber:        "move number",
	RAVStart:          "(",
	RAVEnd:            ")",
	TerminatingResult: "result",
	NullMoveToken:     "null move",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// Text holds the symbol, string contents, comment, NAG or result.
	Text string

	// Line and column for error reporting, both 1-based.
	Line   int
	Column int
}

// describe names the token for error messages.
func (t Token) describe() string {
	switch t.Type {
	case SymbolToken, TerminatingResult, NAGToken:
		return t.Text
	case StringToken:
		return `"` + t.Text + `"`
	}
	return t.Type.String()
}
