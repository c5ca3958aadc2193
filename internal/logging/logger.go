package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.elastic.co/ecszerolog"

	"plagrelay/internal/config"
)

const appName = "plagrelay"

// Setup installs the global zerolog logger according to cfg. Output goes to
// stdout in one of three formats: "console" (pretty), "json" or "ecs".
func Setup(cfg *config.LogConfig) zerolog.Logger {
	logger := New(os.Stdout, cfg)
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	log.Logger = logger
	return logger
}

// New builds a logger writing to w without touching global state.
func New(w io.Writer, cfg *config.LogConfig) zerolog.Logger {
	level := parseLevel(cfg.Level)
	switch strings.ToLower(cfg.Format) {
	case "ecs":
		return ecszerolog.New(w).Level(level).With().Str("app", appName).Logger()
	case "json":
		return zerolog.New(w).Level(level).With().Timestamp().Str("app", appName).Logger()
	default:
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Str("app", appName).Logger()
	}
}

func parseLevel(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || raw == "" {
		return zerolog.InfoLevel
	}
	return level
}
