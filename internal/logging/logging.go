// Package logging holds the structured logger shared by the chess core and
// the log-and-return helper used at every failure site.
package logging

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

var defaultLogger atomic.Pointer[log.Logger]

func init() {
	defaultLogger.Store(New(os.Stderr, log.WarnLevel))
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "chesscore",
		Level:  level,
	})
}

// Default returns the package logger.
func Default() *log.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the package logger. A nil logger is ignored.
func SetDefault(l *log.Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and
// applies it to the package logger.
func SetLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "log level %q", name)
	}
	Default().SetLevel(level)
	return nil
}

// Fail logs err with its structured context on the package logger and
// returns it unchanged, so a failure site is a single statement:
//
//	return logging.Fail(err, "fen", fen)
func Fail(err error, keyvals ...any) error {
	return FailTo(Default(), err, keyvals...)
}

// FailTo is Fail with an explicit logger; a nil logger falls back to Default.
func FailTo(l *log.Logger, err error, keyvals ...any) error {
	if err == nil {
		return nil
	}
	if l == nil {
		l = Default()
	}
	l.Error(err.Error(), keyvals...)
	return err
}

// SetOutput redirects the package logger to w.
func SetOutput(w io.Writer) {
	Default().SetOutput(w)
}
