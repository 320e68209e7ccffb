// Package logging builds the application's zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileName is the log file created in Options.Dir.
const FileName = "moneyshot.log"

// Options select the log sinks.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Dir receives FileName when set.
	Dir string
	// Console adds a human-readable writer on stderr.
	Console bool
	// Stderr overrides the console destination, for tests.
	Stderr io.Writer
}

// Setup returns a logger writing to the configured sinks and a function
// closing the log file. With no sink configured the logger discards
// everything.
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	var writers []io.Writer
	closer := noop
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("logging: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(opts.Dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("logging: %w", err)
		}
		writers = append(writers, f)
		closer = f.Close
	}
	if opts.Console {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"})
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}
	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return log, closer, nil
}

// DefaultDir is the directory next to the settings file.
func DefaultDir(configPath string) string {
	if configPath == "" {
		return filepath.Join(os.TempDir(), "MoneyShot")
	}
	return filepath.Dir(configPath)
}
