// Package logging builds the slog loggers of tsh. Commands log to stderr so
// that reports, dumps and outlines on stdout can be piped.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger on w at level, normally the command's error
// stream. Parse and pack failures are logged under "err".
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns the logger commands hold before flags are parsed.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
