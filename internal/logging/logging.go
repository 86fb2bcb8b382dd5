package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init installs the default slog logger on stderr. Verbose enables debug
// output; otherwise only warnings and errors are logged.
func Init(verbose bool) {
	InitWriter(os.Stderr, verbose)
}

// InitWriter installs the default slog logger writing to w.
func InitWriter(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
