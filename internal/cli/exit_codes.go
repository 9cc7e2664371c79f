package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the tfdiag CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailureFound indicates at least one classified outcome was a failure
	ExitFailureFound = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitInvalidInput indicates an outcome record could not be read
	ExitInvalidInput = 4
)

// ExitError carries a process exit code out of a RunE handler without
// calling os.Exit, so commands stay testable. Its message has already been
// printed when it is returned.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError for code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInvalidArguments
}
