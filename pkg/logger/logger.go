// Package logger provides the logging interface for the domain expiry alert application
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultFile is the log file used when none is configured
const DefaultFile = "domain_check.log"

// Logger wraps a logrus logger with the printf-style surface used across the app
type Logger struct {
	entry        *logrus.Logger
	debugEnabled bool
	closer       io.Closer
}

// New creates a new logger instance writing to stderr
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a logger writing timestamped lines to w
func NewWithWriter(w io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logger := &Logger{entry: l}
	logger.SetDebug(strings.ToLower(os.Getenv("DEBUG")) == "true")
	return logger
}

// OpenFile creates a logger appending to the file at path.
// The file is created if it does not exist; call Close when done.
func OpenFile(path string) (*Logger, error) {
	if path == "" {
		path = DefaultFile
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	l := NewWithWriter(f)
	l.closer = f
	return l, nil
}

// Close releases the underlying log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// Debugf logs debug messages when debug is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Infof logs informational messages
func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warnf logs warning messages
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Errorf logs error messages
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// SetDebug enables or disables debug logging
func (l *Logger) SetDebug(enabled bool) {
	l.debugEnabled = enabled
	if enabled {
		l.entry.SetLevel(logrus.DebugLevel)
	} else {
		l.entry.SetLevel(logrus.InfoLevel)
	}
}

// DebugEnabled reports whether debug lines are written
func (l *Logger) DebugEnabled() bool {
	return l.debugEnabled
}
