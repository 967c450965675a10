// FILE: nsdebug/src/cmd/nsdebug/output.go
package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Manages all application output respecting quiet mode
type OutputHandler struct {
	quiet  bool
	mu     sync.RWMutex
	stdout io.Writer
	stderr io.Writer
}

// Global output handler instance
var output *OutputHandler

// Initializes the global output handler
func InitOutputHandler(quiet bool) {
	output = &OutputHandler{
		quiet:  quiet,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Writes to stderr if not in quiet mode
func (o *OutputHandler) Error(format string, args ...any) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

// Returns the report destination; reports are printed even in quiet mode
func (o *OutputHandler) Stdout() io.Writer {
	return o.stdout
}

// Returns the diagnostics destination, discarding in quiet mode
func (o *OutputHandler) Stderr() io.Writer {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.quiet {
		return io.Discard
	}
	return o.stderr
}

// Returns the current quiet mode status
func (o *OutputHandler) IsQuiet() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.quiet
}

func Error(format string, args ...any) {
	if output != nil {
		output.Error(format, args...)
	} else {
		// Fallback if handler not initialized
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
