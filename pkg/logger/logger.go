// =============================================================================
// Monarch Importer - Logger Setup
// =============================================================================
//
// Structured logging via log/slog. Init is called once from the CLI root
// before any command runs; packages then use slog.Default() (or a child
// logger with import-run attributes attached).
//
// =============================================================================

package logger

import (
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Init initializes the global slog logger with the given configuration.
func Init(cfg Config) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ForRun returns a logger carrying the import-run attributes every batch
// log line should have.
func ForRun(recordType, sourceFile string) *slog.Logger {
	return slog.Default().With("type", recordType, "source", sourceFile)
}
