package tferrors

import (
	"fmt"
	"strings"
)

// Common error messages for the tfdiag CLI.

// UnknownKind creates a configuration error for a kind outside the taxonomy.
func UnknownKind(provided string) *CLIError {
	names := make([]string, 0, len(kindOrder))
	for _, k := range kindOrder {
		names = append(names, string(k))
	}
	return NewConfigError(
		fmt.Sprintf("unknown failure kind: %q", provided),
		"Valid kinds: "+strings.Join(names, ", "),
		"List kinds with: tfdiag kinds",
	)
}

// MissingFlag creates an argument error for a required flag.
func MissingFlag(flag, usage string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("--%s is required", flag),
		"Run the command with --help to see all options",
	).withUsage(usage)
}

// InvalidDuration creates an argument error for a negative or malformed duration.
func InvalidDuration(provided string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid duration: %s", provided),
		"Pass the elapsed time in seconds, e.g. --duration 1.25",
		"Omit --duration when the elapsed time is unknown",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Remove the file to fall back to defaults",
	)
}

// RecordReadError creates an error when an outcome record cannot be loaded.
func RecordReadError(path string, err error) *CLIError {
	return WrapWithMessage(err, Input,
		fmt.Sprintf("failed to read outcome record: %s", path),
		"Records are YAML or JSON with kind, exit_code, stdout and stderr fields",
		"Check that the file exists and is readable",
	)
}

// ClassificationCancelled creates a runtime error for a record that was not
// classified because the run was cancelled.
func ClassificationCancelled(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("classification of %s cancelled", path),
		"Re-run tfdiag classify for the remaining records",
	)
}

// InvalidOutputFormat creates an argument error for an unsupported --output value.
func InvalidOutputFormat(provided string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid output format: %s", provided),
		"Valid formats: text, yaml",
	)
}
