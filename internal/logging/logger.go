// Package logging provides the leveled console logger used by the CLI and the
// extraction pipeline, plus a no-op logger for tests and library callers.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	verboseLabel = "[DEBUG] "
	warnLabel    = "[WARN ] "
	errorLabel   = "[ERROR] "
)

// Logger receives diagnostics. Info and Warn are always written; Verbose
// only when verbose output was requested.
type Logger interface {
	Verbose(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// ConsoleLogger writes one line per message. Safe for concurrent use.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a logger writing to stderr.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewWriterLogger(os.Stderr, verbose)
}

// NewWriterLogger creates a logger writing to w.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: w, verbose: verbose}
}

// Verbose logs detailed diagnostics if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write(verboseLabel, format, args)
}

// Info logs progress of normal operation.
func (l *ConsoleLogger) Info(format string, args ...any) {
	l.write("", format, args)
}

// Warn logs problems that do not stop the run.
func (l *ConsoleLogger) Warn(format string, args ...any) {
	l.write(warnLabel, format, args)
}

// Error logs failures.
func (l *ConsoleLogger) Error(format string, args ...any) {
	l.write(errorLabel, format, args)
}

func (l *ConsoleLogger) write(label, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, label+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, label+format+"\n")
	}
}

// NullLogger discards all messages.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...any) {}
func (l *NullLogger) Info(format string, args ...any)    {}
func (l *NullLogger) Warn(format string, args ...any)    {}
func (l *NullLogger) Error(format string, args ...any)   {}
