// Package errors provides sentinel errors and error types for the chess core.
// Every failure the engine reports is one of the sentinels below, optionally
// wrapped in a typed error carrying context, so callers can inspect it with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Board state errors.
var (
	// ErrIllegalMove indicates a move that is not in the legal set of the tip position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNullMove indicates the reserved null move was played.
	ErrNullMove = errors.New("null move")

	// ErrNoLegalMoves indicates a move was required but the position is terminal.
	ErrNoLegalMoves = errors.New("no legal moves")

	// ErrLazyIncompatibility indicates incremental move generation was queried out of sequence.
	ErrLazyIncompatibility = errors.New("lazy move generation queried out of sequence")

	// ErrGameOver indicates a move was attempted after the game ended.
	ErrGameOver = errors.New("game is over")

	// ErrStateNotFound indicates a history lookup matched nothing.
	ErrStateNotFound = errors.New("state not found in history")

	// ErrInvalidDepth indicates a search depth below one.
	ErrInvalidDepth = errors.New("invalid search depth")

	// ErrInvalidSquare indicates a malformed square name or index.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidPosition indicates a structurally valid position that cannot be played.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrPoolStopped indicates a work item dropped by a stopped analysis pool.
	ErrPoolStopped = errors.New("analysis stopped")
)

// Format errors.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidTag indicates a malformed PGN tag pair.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrNotationParse indicates a malformed SAN token.
	ErrNotationParse = errors.New("notation parse error")

	// ErrFile indicates an I/O failure reading a game source.
	ErrFile = errors.New("file error")

	// ErrMoveNotFound indicates a SAN token that resolves to zero or several legal moves.
	ErrMoveNotFound = errors.New("move not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// GameError wraps errors with game context: the ply, the move text and
// the displayable hash of the position where the failure happened.
type GameError struct {
	Err      error  // The underlying error
	Ply      int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	Hash     string // Position hash of the position the move was tried against
	File     string // Source file name (if known)
	Line     int    // Line number in source file (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.File != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
		} else {
			parts = append(parts, e.File)
		}
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}
	if e.Hash != "" {
		parts = append(parts, "position "+e.Hash)
	}

	if len(parts) == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "game error"
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// FENError names the FEN field that failed to decode.
type FENError struct {
	Field  string // placement, active colour, castling, en passant, halfmove clock, fullmove number
	Value  string
	Reason string
}

func (e *FENError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%v: %s field %q: %s", ErrInvalidFEN, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%v: %s field: %s", ErrInvalidFEN, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidFEN.
func (e *FENError) Unwrap() error {
	return ErrInvalidFEN
}

// NotationError reports a malformed SAN token. Index is -1 when the
// failure is not tied to a single character.
type NotationError struct {
	Text   string
	Char   byte
	Index  int
	Reason string
}

func (e *NotationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %q: %s (%q at index %d)", ErrNotationParse, e.Text, e.Reason, e.Char, e.Index)
	}
	return fmt.Sprintf("%v: %q: %s", ErrNotationParse, e.Text, e.Reason)
}

// Unwrap returns ErrNotationParse.
func (e *NotationError) Unwrap() error {
	return ErrNotationParse
}

// ParseError represents a parsing error with file location context.
// It's used for PGN lexing and tag errors.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source file name
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	loc := e.File
	if e.Line > 0 {
		if loc != "" {
			loc += ":"
		} else {
			loc = "line "
		}
		loc += fmt.Sprintf("%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
	}
	if loc != "" {
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
