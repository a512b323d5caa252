package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"snake-sim/config"

	"github.com/rs/zerolog"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// setupLogging builds the process logger. A window or terminal owns the
// screen, so those backends log to cfg.LogFile; headless runs log to stderr.
func setupLogging(cfg config.Config, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parsing log level: %w", err)
	}

	var out io.WriteCloser
	if cfg.Backend == config.BackendHeadless {
		out = nopCloser{zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}}
	} else {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("backend", cfg.Backend).
		Logger()
	return logger, out, nil
}
