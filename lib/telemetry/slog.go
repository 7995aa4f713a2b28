package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default text logger on stderr. Verbose enables
// debug logs, which also unlocks raw http message dumps from instrumented
// resty clients.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
