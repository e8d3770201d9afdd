package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/config"
)

func nopClose() error { return nil }

// newLogger builds the configured logger. The returned func closes the log file,
// if one was opened.
func newLogger(cfg config.LogConfig) (zerolog.Logger, func() error, error) {
	var zLevel zerolog.Level
	switch cfg.Level {
	case "debug":
		zLevel = zerolog.DebugLevel
	case "info", "":
		zLevel = zerolog.InfoLevel
	case "warn":
		zLevel = zerolog.WarnLevel
	case "error":
		zLevel = zerolog.ErrorLevel
	default:
		return zerolog.Nop(), nopClose, fmt.Errorf("invalid log level %q", cfg.Level)
	}

	var out io.Writer = os.Stderr
	closeLog := nopClose
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nopClose, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = f.Close
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(out)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: cfg.File != ""})
	}
	return logger.Level(zLevel).With().Timestamp().Logger(), closeLog, nil
}
