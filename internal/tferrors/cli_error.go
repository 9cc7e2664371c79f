package tferrors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors raised by tfdiag itself, as opposed to
// failures reported by terraform. The CLI picks its exit code from it.
type ErrorCategory int

const (
	// Argument errors come from invalid or missing flags.
	Argument ErrorCategory = iota
	// Configuration errors come from config files, TFDIAG_* variables or an
	// unrecognized kind.
	Configuration
	// Input errors occur when an outcome record or stderr file cannot be
	// read or decoded.
	Input
	// Runtime errors stop tfdiag mid-run, e.g. a cancelled classification.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Input:         "Input Error",
	Runtime:       "Runtime Error",
}

// String returns the heading printed before the error message.
func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is an error tfdiag reports about its own inputs, with steps the
// user can take to fix it.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	// Usage is the command synopsis shown for argument errors.
	Usage string
	// Err is the underlying cause; nil for errors raised directly.
	Err error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func newCLIError(category ErrorCategory, message string, remediation []string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: remediation}
}

// NewArgumentError creates an argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return newCLIError(Argument, message, remediation)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return newCLIError(Configuration, message, remediation)
}

// withUsage returns e with the command synopsis attached.
func (e *CLIError) withUsage(usage string) *CLIError {
	e.Usage = usage
	return e
}

// WrapWithMessage wraps err as a CLIError of the given category. The message
// becomes "<message>: <err>" and err stays reachable through Unwrap. A nil
// err returns nil.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	e := newCLIError(category, fmt.Sprintf("%s: %v", message, err), remediation)
	e.Err = err
	return e
}

// IsCLIError reports whether err's chain contains a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
