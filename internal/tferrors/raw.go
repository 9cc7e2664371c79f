package tferrors

import (
	"errors"
	"strconv"
	"strings"
)

// RawCommandError is a failure of the process execution step itself,
// before any subcommand-specific interpretation of the result.
type RawCommandError struct {
	detail   string
	exitCode int
	stdout   string
	stderr   string
}

// NewRawError creates a raw execution error.
func NewRawError(detail string, exitCode int, stdout, stderr string) *RawCommandError {
	return &RawCommandError{
		detail:   detail,
		exitCode: exitCode,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Detail returns the underlying error detail.
func (e *RawCommandError) Detail() string { return e.detail }

// ExitCode returns the process exit code.
func (e *RawCommandError) ExitCode() int { return e.exitCode }

// Stdout returns the captured standard output.
func (e *RawCommandError) Stdout() string { return e.stdout }

// Stderr returns the captured standard error.
func (e *RawCommandError) Stderr() string { return e.stderr }

// Error renders Code, Stdout (only when non-empty), Stderr and Details, in
// that order.
func (e *RawCommandError) Error() string {
	var sb strings.Builder
	sb.WriteString("Code: ")
	sb.WriteString(strconv.Itoa(e.exitCode))
	if e.stdout != "" {
		sb.WriteString("\nStdout:\n")
		sb.WriteString(e.stdout)
	}
	sb.WriteString("\nStderr:\n")
	sb.WriteString(e.stderr)
	sb.WriteString("\nDetails:\n")
	sb.WriteString(e.detail)
	return sb.String()
}

// Is matches ErrRawCommand.
func (e *RawCommandError) Is(target error) bool {
	s, ok := target.(*sentinel)
	return ok && s.raw
}

// IsRawCommandError checks if err, or an error it wraps, is a RawCommandError.
func IsRawCommandError(err error) bool {
	return AsRawCommandError(err) != nil
}

// AsRawCommandError returns the first RawCommandError in err's chain, or nil.
func AsRawCommandError(err error) *RawCommandError {
	var r *RawCommandError
	if errors.As(err, &r) {
		return r
	}
	return nil
}
