// Package logger configures the structured logger of the command line and
// forwards the diagnostics of the pipeline stages to it.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/etnz/stoier"
	"github.com/rs/zerolog"
)

type contextKey struct{}

// Level returns the log level selected by the global flags: debug wins over
// verbose, warnings are always shown.
func Level(debug, verbose bool) zerolog.Level {
	switch {
	case debug:
		return zerolog.DebugLevel
	case verbose:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

// New creates a human friendly logger writing to w (stderr when nil).
func New(w io.Writer, debug, verbose bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{Out: w, NoColor: w != os.Stderr, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(output).Level(Level(debug, verbose))
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext retrieves the logger from the context, or a warning level logger
// on stderr.
func FromContext(ctx context.Context) *zerolog.Logger {
	if log, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
		return &log
	}
	log := New(nil, false, false)
	return &log
}

func level(l stoier.Level) zerolog.Level {
	switch l {
	case stoier.LevelDebug:
		return zerolog.DebugLevel
	case stoier.LevelInfo:
		return zerolog.InfoLevel
	case stoier.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Emit writes each diagnostic as a log event with its structured fields.
func Emit(log zerolog.Logger, ds stoier.Diagnostics) {
	for _, d := range ds {
		e := log.WithLevel(level(d.Level)).Str("kind", string(d.Kind))
		if !d.ID.IsZero() {
			e = e.Stringer("id", d.ID)
		}
		if d.Kind == stoier.KindBalanceMismatch {
			e = e.Stringer("expected", d.Expected).Stringer("actual", d.Actual)
		}
		e.Msg(d.Message)
	}
}
