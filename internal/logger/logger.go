// Package logger provides verbose logging for the ingest CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to trace the upload pipeline. Errors are
// always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// level tags a log line.
type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
	levelError level = "ERROR"
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

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug traces pipeline steps.
func Debug(format string, args ...any) {
	emit(levelDebug, false, format, args...)
}

// Section marks the start of a pipeline stage.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info reports a completed step.
func Info(format string, args ...any) {
	emit(levelInfo, false, format, args...)
}

// Warn reports a recoverable problem, such as falling back to the cache.
func Warn(format string, args ...any) {
	emit(levelWarn, false, format, args...)
}

// Error prints regardless of verbose mode.
func Error(format string, args ...any) {
	emit(levelError, true, format, args...)
}

func emit(l level, always bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !always && !verbose {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", l, fmt.Sprintf(format, args...))
}
