// Package logging adapts zerolog to the retry.Logger interface.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger writes printf-style messages through a zerolog logger. The zero
// value discards everything.
type Logger struct {
	zl      zerolog.Logger
	hasBase bool
}

// New wraps an existing zerolog logger
func New(zl zerolog.Logger) Logger {
	return Logger{zl: zl, hasBase: true}
}

// Nop returns a logger that never writes anything
func Nop() Logger {
	return New(zerolog.Nop())
}

// NewConsole creates a human-readable logger on stdout
func NewConsole(level string) Logger {
	return NewConsoleWriter(os.Stdout, level)
}

// NewConsoleWriter creates a human-readable logger on w
func NewConsoleWriter(w io.Writer, level string) Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	return New(zerolog.New(cw).Level(ParseLevel(level, zerolog.InfoLevel)).With().Timestamp().Logger())
}

// NewJSON creates a logger writing one JSON object per line to w
func NewJSON(w io.Writer, level string) Logger {
	return New(zerolog.New(w).Level(ParseLevel(level, zerolog.InfoLevel)).With().Timestamp().Logger())
}

// With returns a logger that adds a fixed string field to every message
func (l Logger) With(key, value string) Logger {
	return New(l.root().With().Str(key, value).Logger())
}

// Zerolog exposes the underlying logger
func (l Logger) Zerolog() zerolog.Logger {
	return l.root()
}

func (l Logger) Debugf(format string, args ...interface{}) {
	l.log(zerolog.DebugLevel, format, args...)
}

func (l Logger) Infof(format string, args ...interface{}) {
	l.log(zerolog.InfoLevel, format, args...)
}

func (l Logger) Warnf(format string, args ...interface{}) {
	l.log(zerolog.WarnLevel, format, args...)
}

func (l Logger) Errorf(format string, args ...interface{}) {
	l.log(zerolog.ErrorLevel, format, args...)
}

func (l Logger) root() zerolog.Logger {
	if l.hasBase {
		return l.zl
	}
	return zerolog.Nop()
}

func (l Logger) log(level zerolog.Level, format string, args ...interface{}) {
	zl := l.root()
	e := zl.WithLevel(level)
	if e == nil {
		return
	}
	e.Msgf(format, args...)
}

// ParseLevel maps a level name to a zerolog level, falling back to def
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return def
	}
}
