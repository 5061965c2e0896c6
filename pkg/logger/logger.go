// Package logger provides the leveled printf-style logger used across the service.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level severity of a log line
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Logger writes timestamped leveled lines to stdout and, optionally, a file
type Logger struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
	file  *os.File
}

// New creates a logger. filePath may be empty, in which case only stdout is
// used. level is one of "debug", "info", "warn", "error" (default "info").
func New(filePath, level string) (*Logger, error) {
	l := &Logger{
		level: parseLevel(level),
		out:   os.Stdout,
	}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", filePath, err)
		}
		l.file = f
		l.out = io.MultiWriter(os.Stdout, f)
	}

	return l, nil
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) log(lvl Level, format string, v ...interface{}) {
	if lvl < l.level {
		return
	}

	line := fmt.Sprintf("%s [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		levelNames[lvl],
		fmt.Sprintf(format, v...),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line)
}

// Debug logs at debug level
func (l *Logger) Debug(format string, v ...interface{}) { l.log(LevelDebug, format, v...) }

// Info logs at info level
func (l *Logger) Info(format string, v ...interface{}) { l.log(LevelInfo, format, v...) }

// Warn logs at warn level
func (l *Logger) Warn(format string, v ...interface{}) { l.log(LevelWarn, format, v...) }

// Error logs at error level
func (l *Logger) Error(format string, v ...interface{}) { l.log(LevelError, format, v...) }

// Fatal logs at error level and exits the process
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
	l.Close()
	os.Exit(1)
}

// Close flushes and closes the underlying log file, if any
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}
