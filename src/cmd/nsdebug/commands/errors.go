// FILE: nsdebug/src/cmd/nsdebug/commands/errors.go
package commands

import (
	"errors"
	"fmt"
)

// Process exit codes
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitUnknownCommand = 2
)

// exitError attaches a process exit code to an error
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(format string, args ...any) error {
	return &exitError{code: ExitFailure, err: fmt.Errorf(format, args...)}
}

// ExitCode maps a command error onto the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}
