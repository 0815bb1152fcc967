// Package log is a small leveled wrapper around the standard library logger.
//
// The viewer owns the terminal while it runs, so the default logger writes to
// io.Discard. Setting TCOL_DEBUG_LOG to a path sends the output to that file
// and TCOL_LOG_LEVEL picks the minimum level (debug, info, warn, error).
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelTags[l]
}

// ParseLevel parses a level name. Unknown names yield LevelInfo and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

type Logger struct {
	mu    sync.Mutex
	l     *log.Logger
	level Level
}

var std = New(io.Discard, "", log.LstdFlags|log.Lmicroseconds, LevelInfo)

func New(out io.Writer, prefix string, flag int, level Level) *Logger {
	return &Logger{l: log.New(out, prefix, flag), level: level}
}

// SetOutput sets the output destination for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.l.SetOutput(w)
}

func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) enabled(level Level) bool {
	return level >= l.Level()
}

func (l *Logger) logf(level Level, format string, v ...any) {
	if !l.enabled(level) {
		return
	}
	l.l.Output(3, fmt.Sprintf("%-5s %s", level, fmt.Sprintf(format, v...)))
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }

// SetupFromEnv points the standard logger at $TCOL_DEBUG_LOG and applies
// $TCOL_LOG_LEVEL. The returned function closes the log file, if one was
// opened.
func SetupFromEnv() (cleanup func() error, err error) {
	cleanup = func() error { return nil }

	if lv, ok := ParseLevel(os.Getenv("TCOL_LOG_LEVEL")); ok {
		std.SetLevel(lv)
	}

	path := os.Getenv("TCOL_DEBUG_LOG")
	if path == "" {
		return cleanup, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return cleanup, fmt.Errorf("failed to open debug log %s: %w", path, err)
	}

	// Without an explicit level a debug log is meant to be verbose.
	if os.Getenv("TCOL_LOG_LEVEL") == "" {
		std.SetLevel(LevelDebug)
	}
	std.SetOutput(f)
	return func() error {
		std.SetOutput(io.Discard)
		return f.Close()
	}, nil
}

// These functions write to the standard logger.

func Debugf(format string, v ...any) { std.logf(LevelDebug, format, v...) }
func Infof(format string, v ...any)  { std.logf(LevelInfo, format, v...) }
func Warnf(format string, v ...any)  { std.logf(LevelWarn, format, v...) }
func Errorf(format string, v ...any) { std.logf(LevelError, format, v...) }
