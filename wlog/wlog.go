// Package wlog is a thin wrapper around zerolog giving every other package
// a single, consistently-configured structured logger.
package wlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// L is the package-level logger every component logs through. Tests and
// cmd/wotan may replace its output via SetOutput/SetLevel; the zero value
// (before any of this package's init-time setup) is never used directly.
var L = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

// SetOutput redirects L's sink, e.g. to a file or io.Discard in tests.
func SetOutput(w io.Writer) {
	L = L.Output(w)
}

// SetLevel adjusts L's minimum level (e.g. zerolog.Disabled in quiet runs).
func SetLevel(level zerolog.Level) {
	L = L.Level(level)
}

// Warn logs a numerical warning: a computed probability fell outside
// [0-tol, 1+tol] and was clamped. Not fatal.
func Warn(context string, raw, clamped float64) {
	L.Warn().
		Str("context", context).
		Float64("raw", raw).
		Float64("clamped", clamped).
		Msg("probability out of range, clamped")
}

// Info logs a run-level informational message (e.g. a binary-search probe).
func Info(msg string, fields map[string]any) {
	ev := L.Info()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
