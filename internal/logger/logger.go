package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"wfh-bot/config"
)

// Setup настраивает slog по умолчанию: JSON для production, текст для разработки.
func Setup(cfg *config.Config) {
	slog.SetDefault(New(os.Stdout, cfg.Log.Level, cfg.Log.Format))
}

func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
