// Package logging builds the structured logger used across the pipeline.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger writing to stderr. When output is a terminal and
// plain is false, events are rendered through zerolog's human-readable
// ConsoleWriter; otherwise (redirected to a file, piped, or --no-progress)
// plain JSON lines are emitted, which is what a log aggregator expects.
func New(plain bool) zerolog.Logger {
	var w io.Writer = os.Stderr
	if !plain && isTerminal(os.Stderr) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
