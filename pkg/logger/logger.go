package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrUnknownFormat is returned when Config.Format is neither json nor text.
var ErrUnknownFormat = errors.New("logger: unknown format")

// Config holds logger configuration.
// Embed it in the application config for env parsing with caarlos0/env.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// NewHandler builds the base handler for cfg writing to w.
func NewHandler(cfg Config, w io.Writer) (slog.Handler, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, errors.Join(ErrUnknownFormat, errors.New(cfg.Format))
	}
}

// New creates a stdout logger from cfg with optional context extractors.
// An invalid cfg falls back to JSON at info level and logs why.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(Decorate(stdoutHandler(cfg), extractors...))
}

// stdoutHandler returns the configured stdout handler or the default one.
func stdoutHandler(cfg Config) slog.Handler {
	h, err := NewHandler(cfg, os.Stdout)
	if err != nil {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		slog.New(h).Warn("invalid logger config, using defaults", slog.String("error", err.Error()))
	}
	return h
}
