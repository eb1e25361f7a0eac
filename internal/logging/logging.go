// Package logging configures the process-wide slog logger for cmt.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the default logger on stderr so that report output on
// stdout stays machine readable. Dev mode logs text at debug level; otherwise
// JSON at info level.
func Setup(devMode bool) {
	slog.SetDefault(New(os.Stderr, devMode))
}

// New builds a logger writing to w with the handler Setup would choose.
func New(w io.Writer, devMode bool) *slog.Logger {
	if devMode {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
