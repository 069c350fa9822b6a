package rag

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// LogLevel is the severity threshold for log output. Higher values are
// more verbose.
type LogLevel int

const (
	// LogLevelOff disables all logging
	LogLevelOff LogLevel = iota
	// LogLevelError enables only error messages
	LogLevelError
	// LogLevelWarn enables error and warning messages
	LogLevelWarn
	// LogLevelInfo enables error, warning, and info messages
	LogLevelInfo
	// LogLevelDebug enables all messages including debug
	LogLevelDebug
)

// Logger is the structured logging interface used across the chunking
// pipeline. Messages carry optional key-value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	// SetLevel changes the current logging level.
	SetLevel(level LogLevel)
}

// DefaultLogger writes leveled key-value messages to os.Stderr using the
// standard library log package.
type DefaultLogger struct {
	logger *log.Logger
	level  LogLevel
}

// NewLogger creates a DefaultLogger filtering below the given level.
func NewLogger(level LogLevel) Logger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  level,
	}
}

// SetLevel updates the logging level; messages below it are dropped.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *DefaultLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	if level <= l.level {
		l.logger.Printf("%s: %s %v", level, msg, keysAndValues)
	}
}

// Debug logs detailed diagnostic information.
func (l *DefaultLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelDebug, msg, keysAndValues...)
}

// Info logs general operational information.
func (l *DefaultLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelInfo, msg, keysAndValues...)
}

// Warn logs conditions that are unusual but not fatal to the operation.
func (l *DefaultLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelWarn, msg, keysAndValues...)
}

// Error logs failures that affect the current operation.
func (l *DefaultLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelError, msg, keysAndValues...)
}

// String returns the textual form of the level.
func (l LogLevel) String() string {
	return [...]string{"OFF", "ERROR", "WARN", "INFO", "DEBUG"}[l]
}

// UnmarshalText lets LogLevel be set from configuration files or
// environment variables.
func (l *LogLevel) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "OFF":
		*l = LogLevelOff
	case "ERROR":
		*l = LogLevelError
	case "WARN":
		*l = LogLevelWarn
	case "INFO":
		*l = LogLevelInfo
	case "DEBUG":
		*l = LogLevelDebug
	default:
		return fmt.Errorf("invalid log level: %s", string(text))
	}
	return nil
}

// GlobalLogger is the package-level logger used by the pipeline stages.
var GlobalLogger Logger

func init() {
	GlobalLogger = NewLogger(LogLevelWarn)
}

// SetGlobalLogLevel adjusts verbosity for the whole package.
func SetGlobalLogLevel(level LogLevel) {
	GlobalLogger.SetLevel(level)
}
