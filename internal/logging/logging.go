package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where and how much is logged.
type Options struct {
	File    string
	Level   string
	Console bool
}

// Setup configures the global zerolog logger to append JSON lines to the log
// file, optionally mirrored to a console writer on stderr. The returned file
// must be closed by the caller.
func Setup(opts Options) (*os.File, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var out io.Writer = file
	if opts.Console {
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	return file, nil
}

// Read returns the contents of the log file.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read log file: %w", err)
	}
	return string(data), nil
}

// Clear truncates the log file. It must already exist.
func Clear(path string) error {
	if err := os.Truncate(path, 0); err != nil {
		return fmt.Errorf("failed to clear log file: %w", err)
	}
	return nil
}
