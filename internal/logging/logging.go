// Package logging builds the application's slog logger. The terminal belongs
// to the UI, so records go to a file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/mdobak/go-xerrors"
)

// Open creates a text logger appending to path. The returned closer must be
// called on shutdown.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, xerrors.New("open log file", err)
	}
	return New(f, level), f, nil
}

func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Err formats err with its stack trace when it carries one.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", xerrors.Sprint(err))
}
