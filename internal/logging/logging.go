package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LevelDebug is the debug log level.
	LevelDebug LogLevel = iota
	// LevelInfo is the info log level.
	LevelInfo
	// LevelWarn is the warning log level.
	LevelWarn
	// LevelError is the error log level.
	LevelError
)

var (
	mu           sync.RWMutex
	currentLevel = levelFromEnv()
	logger       = log.New(os.Stderr, "", log.LstdFlags)
)

// levelFromEnv derives the initial log level from DEBUG / LOG_LEVEL.
func levelFromEnv() LogLevel {
	if debug := os.Getenv("DEBUG"); debug != "" {
		switch strings.ToLower(debug) {
		case "1", "true", "yes", "on":
			return LevelDebug
		}
	}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// GetLevel returns the current log level.
func GetLevel() LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// SetLevel overrides the log level, typically from a --debug flag.
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

// SetOutput redirects all log output, e.g. into a console view or a test buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug).
func Debug(format string, args ...interface{}) {
	logAt(LevelDebug, "[DEBUG] "+format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	logAt(LevelInfo, "[INFO] "+format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	logAt(LevelWarn, "[WARN] "+format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	logAt(LevelError, "[ERROR] "+format, args...)
}

// Fatal logs an error message and exits.
func Fatal(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Fatalf("[FATAL] "+format, args...)
}

// Printf is a pass-through for messages that should always print.
func Printf(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Printf(format, args...)
}

func logAt(level LogLevel, format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if currentLevel <= level {
		logger.Printf(format, args...)
	}
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}
