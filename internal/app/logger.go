package app

import (
	"fmt"
	"io"
	"log/slog"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds an isolated logger for one App. An empty level or format
// means info and text. Anything else must be one of the names the CLI accepts.
func newLogger(levelStr, formatStr string, outW io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo
	if levelStr != "" {
		l, ok := logLevels[levelStr]
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", levelStr)
		}
		level = l
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(outW, handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(outW, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q", formatStr)
	}

	return slog.New(handler), nil
}
