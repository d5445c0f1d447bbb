// Package logger is the leveled logging facade used across chatwire.
//
// It wraps a single logrus logger so that library packages can log through
// plain package-level functions without carrying a logger reference around.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the verbosity threshold used by the logger.
//
// Lower values are more verbose.
type Level int

const (
	// LevelTrace enables extremely verbose logs (socket events, raw acks, etc).
	LevelTrace Level = iota
	// LevelDebug enables verbose logs intended for debugging.
	LevelDebug
	// LevelInfo enables informational logs (default).
	LevelInfo
	// LevelWarn enables only warnings and errors.
	LevelWarn
	// LevelError enables only error logs.
	LevelError
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// ParseLevel parses a log level string into a Level.
func ParseLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", raw)
}

// SetOutput replaces the writer used by the global logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetLevel sets the global log level threshold.
func SetLevel(level Level) {
	log.SetLevel(logrusLevel(level))
}

// Enabled reports whether a level would be emitted by the current configuration.
func Enabled(level Level) bool {
	return log.IsLevelEnabled(logrusLevel(level))
}

func logrusLevel(level Level) logrus.Level {
	switch level {
	case LevelTrace:
		return logrus.TraceLevel
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Tracef logs at TRACE level.
func Tracef(format string, args ...any) {
	log.Tracef(format, args...)
}

// Debugf logs at DEBUG level.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Infof logs at INFO level.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Warnf logs at WARN level.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Errorf logs at ERROR level.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
