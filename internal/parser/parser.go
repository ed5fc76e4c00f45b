package parser

import (
	"io"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/logging"
)

// Game is a parsed game before its moves are replayed.
type Game struct {
	Tags map[string]string
	// TagOrder lists tag names in the order they first appeared.
	TagOrder []string
	Moves    []MoveText
	// Comments before the first move.
	PrefixComments []string
	// Result is the terminating result token, "" if there was none.
	Result    string
	StartLine int
	EndLine   int
}

// MoveText is one move of the main line as written.
type MoveText struct {
	SAN      string
	Null     bool
	NAGs     []string
	Comments []string
	Line     int
	Column   int
}

// SetTag sets a tag, keeping the position of an existing one.
func (g *Game) SetTag(name, value string) {
	if _, ok := g.Tags[name]; !ok {
		g.TagOrder = append(g.TagOrder, name)
	}
	g.Tags[name] = value
}

// Parser parses PGN input into Game records. Variations are skipped.
type Parser struct {
	lexer   *Lexer
	tok     Token
	started bool
	cfg     *config.Config
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	return NewNamedParser(r, "", cfg)
}

// NewNamedParser is NewParser with a source name for error messages.
func NewNamedParser(r io.Reader, file string, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r, file),
		cfg:   cfg,
	}
}

func (p *Parser) nextToken() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) syntaxError(err error, expected string) error {
	return &errors.ParseError{
		Err:      err,
		File:     p.lexer.file,
		Line:     p.tok.Line,
		Column:   p.tok.Column,
		Expected: expected,
		Got:      p.tok.describe(),
	}
}

// ParseGame parses the next game. It returns nil, nil when the input is
// exhausted.
func (p *Parser) ParseGame() (*Game, error) {
	game, err := p.parseGame()
	if err != nil {
		return nil, logging.Fail(err, "file", p.lexer.file, "line", p.lexer.LineNumber())
	}
	return game, nil
}

func (p *Parser) parseGame() (*Game, error) {
	if !p.started {
		p.started = true
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	var prefix []string
	if err := p.skipToNextGame(&prefix); err != nil {
		return nil, err
	}
	if p.tok.Type == EOFToken {
		return nil, nil
	}

	game := &Game{
		Tags:           make(map[string]string),
		PrefixComments: prefix,
		StartLine:      p.tok.Line,
	}
	if err := p.parseTagList(game); err != nil {
		return nil, err
	}
	if err := p.parseMoveList(game); err != nil {
		return nil, err
	}
	game.EndLine = p.lexer.LineNumber()

	if game.Result != "" {
		if r, ok := game.Tags[chess.ResultTag]; !ok || r == "?" || r == "" {
			game.SetTag(chess.ResultTag, game.Result)
		}
	}
	return game, nil
}

// skipToNextGame skips tokens until the start of a game is found,
// collecting comments on the way.
func (p *Parser) skipToNextGame(comments *[]string) error {
	for {
		switch p.tok.Type {
		case EOFToken, TagStart, SymbolToken, NullMoveToken, MoveNumber, TerminatingResult:
			return nil
		case CommentToken:
			*comments = append(*comments, p.tok.Text)
		}
		if err := p.nextToken(); err != nil {
			return err
		}
	}
}

// parseTagList parses zero or more [Name "Value"] pairs.
func (p *Parser) parseTagList(game *Game) error {
	for p.tok.Type == TagStart {
		if err := p.nextToken(); err != nil {
			return err
		}
		if p.tok.Type != SymbolToken {
			return p.syntaxError(errors.ErrInvalidTag, "tag name")
		}
		name := p.tok.Text

		if err := p.nextToken(); err != nil {
			return err
		}
		if p.tok.Type != StringToken {
			return p.syntaxError(errors.ErrInvalidTag, "tag value for "+name)
		}
		value := p.tok.Text

		if err := p.nextToken(); err != nil {
			return err
		}
		if p.tok.Type != TagEnd {
			return p.syntaxError(errors.ErrInvalidTag, "]")
		}
		game.SetTag(name, value)

		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

// parseMoveList parses the main line up to the result token, the next
// game's tags or the end of input.
func (p *Parser) parseMoveList(game *Game) error {
	last := func() *MoveText {
		if len(game.Moves) == 0 {
			return nil
		}
		return &game.Moves[len(game.Moves)-1]
	}

	for {
		switch p.tok.Type {
		case EOFToken, TagStart:
			return nil
		case TerminatingResult:
			game.Result = p.tok.Text
			return p.nextToken()
		case MoveNumber:
		case SymbolToken, NullMoveToken:
			game.Moves = append(game.Moves, MoveText{
				SAN:    p.tok.Text,
				Null:   p.tok.Type == NullMoveToken,
				Line:   p.tok.Line,
				Column: p.tok.Column,
			})
		case NAGToken:
			if m := last(); m != nil {
				m.NAGs = append(m.NAGs, p.tok.Text)
			}
		case CommentToken:
			if m := last(); m != nil {
				m.Comments = append(m.Comments, p.tok.Text)
			} else {
				game.PrefixComments = append(game.PrefixComments, p.tok.Text)
			}
		case RAVStart:
			if err := p.skipVariation(); err != nil {
				return err
			}
		default:
			return p.syntaxError(errors.ErrNotationParse, "move")
		}
		if err := p.nextToken(); err != nil {
			return err
		}
	}
}

// skipVariation skips a parenthesised variation, nested ones included.
// The current token is the opening parenthesis.
func (p *Parser) skipVariation() error {
	depth := 1
	for depth > 0 {
		if err := p.nextToken(); err != nil {
			return err
		}
		switch p.tok.Type {
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
		case EOFToken, TagStart:
			return p.syntaxError(errors.ErrNotationParse, ")")
		}
	}
	return nil
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Game, error) {
	var games []*Game
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			return games, nil
		}
		games = append(games, game)
	}
}
