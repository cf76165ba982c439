// Package logging configures colored structured logging with tint on top of
// log/slog.
//
// Usage:
//
//	logging.Setup("info")                    // level name, e.g. from config
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging at the named level (debug, info, warn,
// error; unknown names fall back to info).
func Setup(level string) {
	SetupWithLevel(parseLevel(level))
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
