// Package logging provides the leveled printf-style logger shared by the
// order codec, the gateway and the command-line tools. A process-wide
// default logger keeps call sites short; components that need their own
// sink construct one with New.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level orders log severities from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the upper-case level name.
func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}

	return levelNames[l]
}

// ParseLevel maps a level name to its Level. Matching is case-insensitive
// and accepts "warning" as an alias for LevelWarn.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}

	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Logger filters printf-style messages by severity before handing them to
// a standard library logger. Safe for concurrent use.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	logger *log.Logger
}

// New returns a logger writing to out at the given level.
func New(out io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(out, "", log.LstdFlags|log.LUTC),
	}
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// Default returns the process-wide logger. It writes to stderr at info
// level until reconfigured with SetLevel or SetLevelFromString.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stderr, LevelInfo)
	})

	return defaultLogger
}

// SetLevel changes the minimum severity the logger emits.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = level
}

// SetLevelFromString sets the level by name, keeping info when the name
// is unknown.
func (l *Logger) SetLevelFromString(name string) {
	level, err := ParseLevel(name)
	if err != nil {
		level = LevelInfo
	}

	l.SetLevel(level)
}

// GetLevel reports the current minimum severity.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.GetLevel() {
		return
	}

	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// Debug logs a message at debug level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// SetLevel changes the default logger's minimum severity.
func SetLevel(level Level) {
	Default().SetLevel(level)
}

// SetLevelFromString sets the default logger's level by name.
func SetLevelFromString(name string) {
	Default().SetLevelFromString(name)
}

// Debug logs a debug message through the default logger.
func Debug(format string, args ...interface{}) {
	Default().Debug(format, args...)
}

// Info logs an info message through the default logger.
func Info(format string, args ...interface{}) {
	Default().Info(format, args...)
}

// Warn logs a warning through the default logger.
func Warn(format string, args ...interface{}) {
	Default().Warn(format, args...)
}

// Error logs an error through the default logger.
func Error(format string, args ...interface{}) {
	Default().Error(format, args...)
}
