// Package logging provides structured-logging helpers.
//
// Loggers are dependency-injected, never global: a component receives
// its logger at construction, scopes it once with slog.With, and falls
// back to a discard logger when none is provided. Output format, level
// and destination are decided only in main(). Log points sit at pass
// and operation boundaries, never inside per-byte or per-line loops.
package logging

import (
	"context"
	"log/slog"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// Default returns logger if non-nil, otherwise a discard logger:
//
//	func NewLoader(logger *slog.Logger) *Loader {
//		logger = logging.Default(logger)
//		return &Loader{logger: logger.With("component", "lines")}
//	}
func Default(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return Discard()
}
