// Package logging provides leveled console/file logging for the inspector tools
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is a logging severity
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var current atomic.Int32

func init() {
	current.Store(int32(LevelInfo))
}

// ParseLevel converts a config string (debug, info, warn, error) into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", s)
	}
}

// String returns the config spelling of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int32(l))
}

// SetLevel changes the minimum level that is written
func SetLevel(l Level) {
	current.Store(int32(l))
}

// GetLevel returns the minimum level that is written
func GetLevel() Level {
	return Level(current.Load())
}

// Setup configures the standard logger. An empty file keeps stderr.
// The returned closer must be closed by the caller when a file was opened.
func Setup(level, file string, verbose bool) (io.Closer, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		l = LevelDebug
	}
	SetLevel(l)

	if file == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// Discard silences all log output (used by batch commands without --verbose)
func Discard() {
	log.SetOutput(io.Discard)
}

func logf(l Level, format string, args ...interface{}) {
	if l < GetLevel() {
		return
	}
	log.Printf("["+strings.ToUpper(l.String())+"] "+format, args...)
}

// Debugf logs at debug level
func Debugf(format string, args ...interface{}) { logf(LevelDebug, format, args...) }

// Infof logs at info level
func Infof(format string, args ...interface{}) { logf(LevelInfo, format, args...) }

// Warnf logs at warn level
func Warnf(format string, args ...interface{}) { logf(LevelWarn, format, args...) }

// Errorf logs at error level
func Errorf(format string, args ...interface{}) { logf(LevelError, format, args...) }
