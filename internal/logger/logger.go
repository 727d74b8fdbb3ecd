// Package logger provides verbose progress logging for confsync. The sync
// workflow is a fixed sequence of stages; with --verbose every stage
// boundary, the remote calls behind it and the poll attempts in between
// are written to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects verbose logs. Defaults to os.Stderr; tests pass a
// buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func emit(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Stage marks the transition into a numbered workflow stage.
func Stage(n int, name string) {
	emit("", "\n--- stage %d: %s ---", n, name)
}

// Info records a completed step within the current stage.
func Info(format string, args ...any) {
	emit("  ", format, args...)
}

// Debug records fine-grained detail, typically one line per remote call
// or poll attempt.
func Debug(format string, args ...any) {
	emit("  debug: ", format, args...)
}

// Warn records a recovered fault, such as a retried push or HTTP request.
func Warn(format string, args ...any) {
	emit("  warn: ", format, args...)
}
