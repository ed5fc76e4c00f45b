// Package testutil provides shared test utilities for the chess core packages.
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// placementOnly compares what is on the board and whose turn it is.
var placementOnly = cmpopts.IgnoreFields(chess.Position{},
	"HalfmoveClock", "MoveNumber", "LastMove", "PositionHash", "RecordHash")

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t *testing.T, got, want any, msgAndArgs ...any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		report(t, msgAndArgs, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertSamePosition fails unless got and want hold the same pieces, side
// to move, castling rights and en passant square. Clocks, hashes and the
// producing move are ignored, so transpositions compare equal.
func AssertSamePosition(t *testing.T, got, want *chess.Position, msgAndArgs ...any) {
	t.Helper()
	if diff := cmp.Diff(want, got, placementOnly); diff != "" {
		report(t, msgAndArgs, "position mismatch (-want +got):\n%s", diff)
	}
}

// AssertMoves compares moves by their coordinate text, in order.
func AssertMoves(t *testing.T, got []chess.Move, want []string, msgAndArgs ...any) {
	t.Helper()
	texts := make([]string, len(got))
	for i, m := range got {
		texts[i] = m.String()
	}
	if diff := cmp.Diff(want, texts, cmpopts.EquateEmpty()); diff != "" {
		report(t, msgAndArgs, "moves mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		report(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// AssertError fails if err is nil.
func AssertError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		report(t, msgAndArgs, "expected error but got nil")
	}
}

// AssertErrorIs fails if err does not match target anywhere in its chain.
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		report(t, msgAndArgs, "error %v does not match %v", err, target)
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t *testing.T, got, substr string, msgAndArgs ...any) {
	t.Helper()
	if !strings.Contains(got, substr) {
		report(t, msgAndArgs, "%q does not contain %q", got, substr)
	}
}

// AssertNotContains fails if substr is found in got.
func AssertNotContains(t *testing.T, got, substr string, msgAndArgs ...any) {
	t.Helper()
	if strings.Contains(got, substr) {
		report(t, msgAndArgs, "%q should not contain %q", got, substr)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t *testing.T, condition bool, msgAndArgs ...any) {
	t.Helper()
	if !condition {
		report(t, msgAndArgs, "expected true but got false")
	}
}

// report prefixes the failure with the caller's optional message.
func report(t *testing.T, msgAndArgs []any, format string, args ...any) {
	t.Helper()
	text := fmt.Sprintf(format, args...)
	if msg := formatMessage(msgAndArgs...); msg != "" {
		text = msg + ": " + text
	}
	t.Error(text)
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...any) string {
	switch {
	case len(msgAndArgs) == 0:
		return ""
	case len(msgAndArgs) > 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(s, msgAndArgs[1:]...)
		}
	}
	return fmt.Sprint(msgAndArgs[0])
}
