package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Lexer tokenizes PGN input one line at a time.
type Lexer struct {
	reader  *bufio.Reader
	file    string
	line    string
	pos     int
	lineNum int
	eof     bool
	err     error
}

// Character classes.
const (
	classError = iota
	classSpace
	classSymbol
	classDigit
)

var chTab [256]int

func init() {
	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = classSpace
	}
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = classDigit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = classSymbol
		chTab[c+32] = classSymbol
	}
	for _, c := range []byte{'_', '+', '#', '=', ':', '-', '/'} {
		chTab[c] = classSymbol
	}
}

// NewLexer creates a new lexer for the given reader. file names the source
// in errors and may be empty.
func NewLexer(r io.Reader, file string) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		file:   file,
	}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			l.err = errors.Wrapf(errors.ErrFile, "%s: %v", l.file, err)
		}
		l.eof = true
		if len(line) == 0 {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

func (l *Lexer) errorf(err error, column int, expected, got string) error {
	return &errors.ParseError{Err: err, File: l.file, Line: l.lineNum, Column: column, Expected: expected, Got: got}
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}

// NextToken returns the next token from the input, or an error for text
// that cannot start any token.
func (l *Lexer) NextToken() (Token, error) {
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				if l.err != nil {
					return Token{}, l.err
				}
				return Token{Type: EOFToken, Line: l.lineNum}, nil
			}
			// A % in the first column escapes the whole line.
			if strings.HasPrefix(l.line, "%") {
				l.pos = len(l.line)
				continue
			}
		}

		ch := l.currentChar()
		start := l.pos
		tok := Token{Line: l.lineNum, Column: start + 1}
		l.pos++

		switch {
		case chTab[ch] == classSpace, ch == '.':
			continue
		case ch == '[':
			tok.Type = TagStart
		case ch == ']':
			tok.Type = TagEnd
		case ch == '(':
			tok.Type = RAVStart
		case ch == ')':
			tok.Type = RAVEnd
		case ch == '"':
			text, err := l.gatherString(tok.Column)
			if err != nil {
				return Token{}, err
			}
			tok.Type, tok.Text = StringToken, text
		case ch == '{':
			tok.Type, tok.Text = CommentToken, l.gatherComment()
		case ch == ';':
			tok.Type, tok.Text = CommentToken, strings.TrimSpace(l.line[l.pos:])
			l.pos = len(l.line)
		case ch == '$':
			for l.pos < len(l.line) && chTab[l.currentChar()] == classDigit {
				l.pos++
			}
			tok.Type, tok.Text = NAGToken, l.line[start:l.pos]
		case ch == '!' || ch == '?':
			for l.pos < len(l.line) && (l.currentChar() == '!' || l.currentChar() == '?') {
				l.pos++
			}
			tok.Type, tok.Text = NAGToken, annotationToNAG(l.line[start:l.pos])
		case ch == '*':
			tok.Type, tok.Text = TerminatingResult, "*"
		case chTab[ch] == classDigit:
			tok = l.gatherNumeric(tok, start)
		case chTab[ch] == classSymbol:
			for l.pos < len(l.line) && chTab[l.currentChar()] >= classSymbol {
				l.pos++
			}
			tok.Text = l.line[start:l.pos]
			tok.Type = SymbolToken
			if tok.Text == "--" || tok.Text == "Z0" {
				tok.Type = NullMoveToken
			}
		default:
			return Token{}, l.errorf(errors.ErrNotationParse, tok.Column, "", strconv.QuoteRune(rune(ch)))
		}
		return tok, nil
	}
}

// gatherString reads a quoted string; the opening quote is consumed.
// Backslash escapes the next character.
func (l *Lexer) gatherString(column int) (string, error) {
	var sb strings.Builder
	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.pos++
		switch ch {
		case '\\':
			if l.pos < len(l.line) {
				sb.WriteByte(l.currentChar())
				l.pos++
			}
		case '"':
			return sb.String(), nil
		default:
			sb.WriteByte(ch)
		}
	}
	return "", l.errorf(errors.ErrInvalidTag, column, "closing quote", "end of line")
}

// gatherComment reads a brace comment, which may span lines.
func (l *Lexer) gatherComment() string {
	var sb strings.Builder
	for {
		if end := strings.IndexByte(l.line[l.pos:], '}'); end >= 0 {
			sb.WriteString(l.line[l.pos : l.pos+end])
			l.pos += end + 1
			break
		}
		sb.WriteString(l.line[l.pos:])
		l.pos = len(l.line)
		if !l.readLine() {
			break
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// gatherNumeric reads a move number, a result, or digit castling.
func (l *Lexer) gatherNumeric(tok Token, start int) Token {
	for l.pos < len(l.line) && chTab[l.currentChar()] >= classSymbol {
		l.pos++
	}
	text := l.line[start:l.pos]

	switch text {
	case "1-0", "0-1", "1/2-1/2":
		tok.Type, tok.Text = TerminatingResult, text
		return tok
	}
	if strings.HasPrefix(text, "0-0") {
		tok.Type, tok.Text = SymbolToken, text
		return tok
	}

	digits := 0
	for digits < len(text) && chTab[text[digits]] == classDigit {
		digits++
	}
	if digits < len(text) {
		// Move number glued to the move, as in "1.e4".
		l.pos = start + digits
		tok.Type, tok.Text = MoveNumber, text[:digits]
		return tok
	}
	for l.pos < len(l.line) && l.currentChar() == '.' {
		l.pos++
	}
	tok.Type, tok.Text = MoveNumber, text
	return tok
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}
