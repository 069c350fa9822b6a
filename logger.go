package docchunk

import (
	"github.com/RidgetopAi/docchunk/rag"
)

// LogLevel controls logging verbosity across the pipeline.
type LogLevel = rag.LogLevel

// Log levels, least to most verbose.
const (
	LogLevelOff   = rag.LogLevelOff
	LogLevelError = rag.LogLevelError
	LogLevelWarn  = rag.LogLevelWarn
	LogLevelInfo  = rag.LogLevelInfo
	LogLevelDebug = rag.LogLevelDebug
)

// Logger is the structured key-value logging interface used by the
// pipeline.
type Logger = rag.Logger

// SetLogLevel adjusts the verbosity of the package-level logger.
func SetLogLevel(level LogLevel) {
	rag.SetGlobalLogLevel(level)
}

// SetLogger replaces the package-level logger with a custom
// implementation.
func SetLogger(logger Logger) {
	rag.GlobalLogger = logger
}
