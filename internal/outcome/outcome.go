// Package outcome classifies the result of one terraform invocation into
// success or a tferrors failure. It never starts processes; the execution
// layer hands it what it captured.
package outcome

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

// Outcome is the captured result of one external invocation.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Seconds is the elapsed time in seconds, nil when it was not measured.
	// It is kept as captured so rendering rounds the original value.
	Seconds *float64
}

// Succeeded applies the generic contract: exit code 0 is success.
func (o Outcome) Succeeded() bool {
	return o.ExitCode == 0
}

// Elapsed returns d in seconds, for building an Outcome literal.
func Elapsed(d time.Duration) *float64 {
	return ElapsedSeconds(d.Seconds())
}

// ElapsedSeconds returns a pointer to secs.
func ElapsedSeconds(secs float64) *float64 {
	return &secs
}

func (o Outcome) durationOption() tferrors.Option {
	if o.Seconds == nil {
		return func(*tferrors.Failure) {}
	}
	return tferrors.WithDurationSeconds(*o.Seconds)
}

// DecodeJSON unmarshals the outcome's stdout into v. A decode failure is
// reported as a KindJSONParse failure carrying the parser error as details.
func DecodeJSON(o Outcome, command string, v any) error {
	if err := json.Unmarshal([]byte(o.Stdout), v); err != nil {
		f, ferr := tferrors.NewFailure(tferrors.KindJSONParse,
			"failed to parse terraform JSON output",
			tferrors.WithCommand(command),
			tferrors.WithStderr(err.Error()),
			o.durationOption(),
		)
		if ferr != nil {
			return ferr
		}
		return f
	}
	return nil
}

// FromExecError converts an execution-layer error into a RawCommandError
// carrying the captured streams. The exit code comes from *exec.ExitError
// when present, then from o.ExitCode when non-zero, else -1. A nil err
// returns nil.
func FromExecError(err error, o Outcome) error {
	if err == nil {
		return nil
	}
	code := -1
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	case o.ExitCode != 0:
		code = o.ExitCode
	}
	return tferrors.NewRawError(err.Error(), code, o.Stdout, o.Stderr)
}

func failureMessage(kind tferrors.Kind, code int) string {
	return fmt.Sprintf("terraform %s failed with exit code %d", kind, code)
}
