// Package logging builds the structured logger handed to the registry and
// every plugin.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel selects the log level when no flag is given.
const EnvLevel = "YEAHYEAH_LOG_LEVEL"

// DefaultLevel keeps launches quiet unless something goes wrong.
const DefaultLevel = log.WarnLevel

// ParseLevel converts a level name to a log.Level. Unknown or empty names
// give DefaultLevel.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return DefaultLevel
	}
}

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: false,
		Prefix:          "jj",
	})
	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
