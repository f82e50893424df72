package ux

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the diagnostic logger. Without verbose it discards
// everything; with it, debug records go to w in console format.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !colors}).
		Level(zerolog.DebugLevel).
		With().Timestamp().
		Logger()
}

// WithLogger attaches the diagnostic logger to ctx for zerolog.Ctx.
func WithLogger(ctx context.Context, w io.Writer, verbose bool) context.Context {
	l := NewLogger(w, verbose)
	return l.WithContext(ctx)
}
