package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Development keeps readable text at
// debug level, production ships JSON at info.
func NewLogger(cfg *Config) *slog.Logger {
	level := slog.LevelDebug
	format := "pretty"
	if cfg != nil {
		format = cfg.LogFormat
		if cfg.IsProduction() {
			level = slog.LevelInfo
		}
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: true}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("service", "vestiaire"))
}
