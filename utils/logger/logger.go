package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init builds the process logger, installs it as the slog default and
// returns it. format is "json" or "text". With enableOTel set, records are
// also exported through the global OTel logger provider.
func Init(level, format string, enableOTel bool) *slog.Logger {
	logger := slog.New(newHandler(os.Stdout, parseLevel(level), format, enableOTel))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, level slog.Level, format string, enableOTel bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var stdout slog.Handler
	if strings.EqualFold(format, "text") {
		stdout = slog.NewTextHandler(w, opts)
	} else {
		stdout = slog.NewJSONHandler(w, opts)
	}
	stdout = NewTraceContextHandler(stdout)

	if enableOTel {
		return NewMultiHandler(stdout, level)
	}
	return stdout
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
