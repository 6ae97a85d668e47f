// Package logger provides the diagnostic logger used behind --verbose.
// User-facing command output goes to stdout via fmt; this logger writes
// structured diagnostics to stderr and stays silent unless enabled.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init configures the process-wide logger. With verbose set, debug-level
// output goes to stderr in the zap development format; otherwise the
// logger is a no-op.
func Init(verbose bool) {
	if !verbose {
		log = zap.NewNop()
		return
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	built, err := cfg.Build()
	if err != nil {
		log = zap.NewNop()
		return
	}
	log = built
}

// L returns the current process logger.
func L() *zap.Logger {
	return log
}

// Sync flushes buffered log entries. Safe to call on the no-op logger.
func Sync() {
	_ = log.Sync()
}
