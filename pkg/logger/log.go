package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

// Init initializes the global slog logger at the configured level.
// INKPRESS_LOG_LEVEL and INKPRESS_LOG_SINK override it (for tests and
// scripted runs, e.g. "file:/path/to/log").
func Init(configLevel string) {
	sink := os.Getenv("INKPRESS_LOG_SINK")
	lvl := strings.ToLower(strings.TrimSpace(os.Getenv("INKPRESS_LOG_LEVEL")))
	if lvl == "" {
		lvl = strings.ToLower(strings.TrimSpace(configLevel))
	}
	var level slog.Level
	switch lvl {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if strings.HasPrefix(sink, "file:") {
		path := strings.TrimPrefix(sink, "file:")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err == nil {
			Log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
			return
		}
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
	}
	Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func ensure() *slog.Logger {
	if Log == nil {
		Init("")
	}
	return Log
}

func Debug(msg string, args ...any) { ensure().Debug(msg, args...) }
func Info(msg string, args ...any)  { ensure().Info(msg, args...) }
func Warn(msg string, args ...any)  { ensure().Warn(msg, args...) }
func Error(msg string, args ...any) { ensure().Error(msg, args...) }
