// Package logger is the shared structured logger for batch operations.
//
// Human-facing command output does not go through here; it is styled by the
// cli package. The logger carries diagnostics: per-file conversion results,
// inbox sync progress, index rebuilds.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

var std = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// SetVerbose lowers the level to debug.
func SetVerbose(verbose bool) {
	if verbose {
		std.SetLevel(log.DebugLevel)
	} else {
		std.SetLevel(log.InfoLevel)
	}
}

// With returns a sub-logger carrying the given key/value context.
func With(keyvals ...interface{}) *log.Logger {
	return std.With(keyvals...)
}

// Debug logs at debug level with key/value context.
func Debug(msg interface{}, keyvals ...interface{}) {
	std.Debug(msg, keyvals...)
}

// Info logs at info level with key/value context.
func Info(msg interface{}, keyvals ...interface{}) {
	std.Info(msg, keyvals...)
}

// Warn logs at warn level with key/value context.
func Warn(msg interface{}, keyvals ...interface{}) {
	std.Warn(msg, keyvals...)
}

// Error logs at error level with key/value context.
func Error(msg interface{}, keyvals ...interface{}) {
	std.Error(msg, keyvals...)
}
