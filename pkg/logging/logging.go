// Package logging builds the zerolog loggers used by the server and CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	permission = 0o664
)

// Build collects logger settings before Make opens the destination.
type Build struct {
	writer  io.Writer
	path    string
	level   zerolog.Level
	console bool
}

// Logger pairs the configured logger with the file it writes to, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New starts a builder writing info-level JSON lines to stderr.
func New() *Build {
	return &Build{writer: os.Stderr, level: zerolog.InfoLevel}
}

// FromPath appends log lines to a file instead of the writer.
func (b *Build) FromPath(path string) *Build {
	b.path = strings.TrimSpace(path)
	return b
}

// FromWriter sets the destination writer.
func (b *Build) FromWriter(w io.Writer) *Build {
	if w != nil {
		b.writer = w
	}
	return b
}

// Level sets the minimum level from its name ("debug", "info", ...). Unknown
// names keep the current level.
func (b *Build) Level(name string) *Build {
	if level, err := ParseLevel(name); err == nil {
		b.level = level
	}
	return b
}

// Console switches to zerolog's human readable console output.
func (b *Build) Console(enabled bool) *Build {
	b.console = enabled
	return b
}

// Make opens the destination and returns the logger.
func (b *Build) Make() (*Logger, error) {
	out := &Logger{}
	writer := b.writer
	if b.path != "" {
		file, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", b.path, err)
		}
		out.file = file
		writer = zerolog.SyncWriter(file)
	}
	if b.console {
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: b.path != ""}
	}
	out.Logger = zerolog.New(writer).Level(b.level).With().Timestamp().Logger()
	return out, nil
}

// Close releases the log file when one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name onto a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: unknown level %q", name)
	}
	return level, nil
}
