package main

import "fmt"

// Exit codes for the cadbridge CLI.
const (
	ExitOK               = 0 // Command succeeded.
	ExitInvalidArgs      = 1 // Invalid arguments or configuration.
	ExitConnectionFailed = 2 // FreeCAD addon unreachable.
	ExitOperationFailed  = 3 // The addon or a remote service reported a failure.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitConnectionFailed:
			msg = "cadbridge: cannot reach FreeCAD"
		case ExitOperationFailed:
			msg = "cadbridge: operation failed"
		default:
			msg = "cadbridge: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
