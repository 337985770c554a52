package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs the process-wide slog logger for env.
// LOG_LEVEL (debug, info, warn, error) overrides the environment's default level.
func Setup(env string) {
	handler, level := newHandler(os.Stdout, env, os.Getenv("LOG_LEVEL"))
	slog.SetDefault(slog.New(handler))

	slog.Info("Logger 초기화", "env", env, "level", level.String())
}

// newHandler picks JSON output for production and text everywhere else
func newHandler(w io.Writer, env, levelOverride string) (slog.Handler, slog.Level) {
	var level slog.Level
	json := false

	switch env {
	case "production", "prod":
		level = slog.LevelInfo
		json = true
	case "local", "dev", "development":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	if levelOverride != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(strings.TrimSpace(levelOverride))); err == nil {
			level = parsed
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts), level
	}
	return slog.NewTextHandler(w, opts), level
}
