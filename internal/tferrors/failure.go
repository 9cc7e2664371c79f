// Package tferrors defines how failures of terraform subcommands are
// represented and rendered.
//
// A Failure is the logical failure of one subcommand, tagged with a Kind from
// a closed taxonomy. A RawCommandError is the lower-level failure of the
// process execution step itself. Both are immutable once constructed and
// render a fixed, deterministic diagnostic string from Error.
//
// Callers discriminate failures with IsKind, IsCategory or errors.Is against
// the Err* sentinels, never by matching message text.
package tferrors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Failure is a logical failure of a terraform subcommand.
type Failure struct {
	kind     Kind
	message  string
	command  string
	stderr   string
	duration float64
	timed    bool
}

// Option sets an optional field on a Failure at construction time.
type Option func(*Failure)

// WithCommand records the command line that was executed.
func WithCommand(command string) Option {
	return func(f *Failure) { f.command = command }
}

// WithStderr records the standard error output of the command.
func WithStderr(stderr string) Option {
	return func(f *Failure) { f.stderr = stderr }
}

// WithDuration records how long the command ran before failing.
func WithDuration(d time.Duration) Option {
	return WithDurationSeconds(d.Seconds())
}

// WithDurationSeconds records the elapsed time in seconds.
func WithDurationSeconds(seconds float64) Option {
	return func(f *Failure) {
		f.duration = seconds
		f.timed = true
	}
}

// NewFailure creates a failure of the given kind. Only kinds from the closed
// taxonomy are accepted; anything else is a configuration error.
func NewFailure(kind Kind, message string, opts ...Option) (*Failure, error) {
	if !kind.Valid() {
		return nil, UnknownKind(string(kind))
	}
	f := &Failure{kind: kind, message: message}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewFailureFromString parses kind with ParseKind and creates a failure.
func NewFailureFromString(kind, message string, opts ...Option) (*Failure, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return NewFailure(k, message, opts...)
}

// Kind returns the failure kind.
func (f *Failure) Kind() Kind { return f.kind }

// Category returns the parent category of the failure kind.
func (f *Failure) Category() Kind { return f.kind.Category() }

// Message returns the primary message.
func (f *Failure) Message() string { return f.message }

// Command returns the executed command, or "" when none was recorded.
func (f *Failure) Command() string { return f.command }

// Stderr returns the captured standard error, or "".
func (f *Failure) Stderr() string { return f.stderr }

// Duration returns the elapsed seconds and whether a duration was recorded.
func (f *Failure) Duration() (float64, bool) { return f.duration, f.timed }

// Error renders the diagnostic: the message, then Command, Duration and
// Details lines, each omitted when its field is empty or absent.
func (f *Failure) Error() string {
	var sb strings.Builder
	sb.WriteString(f.message)
	if f.command != "" {
		sb.WriteString("\nCommand: ")
		sb.WriteString(f.command)
	}
	if f.timed {
		fmt.Fprintf(&sb, "\nDuration: %.4fs", f.duration)
	}
	if f.stderr != "" {
		sb.WriteString("\nDetails:\n")
		sb.WriteString(f.stderr)
	}
	return sb.String()
}

// Is matches the kind sentinels. A failure matches the sentinel of its own
// kind and the sentinel of its category, so errors.Is(err, ErrState) holds
// for every state subcommand failure.
func (f *Failure) Is(target error) bool {
	s, ok := target.(*sentinel)
	if !ok || s.raw {
		return false
	}
	return s.kind == f.kind || s.kind == f.kind.Category()
}

// IsKind reports whether err, or an error it wraps, is a Failure of exactly
// the given kind.
func IsKind(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.kind == kind
}

// IsCategory reports whether err, or an error it wraps, is a Failure whose
// kind belongs to category. IsCategory(err, KindState) is true for a
// KindStateRm failure; IsCategory(err, KindPlan) is true only for plan.
func IsCategory(err error, category Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.kind.InCategory(category)
}

// AsFailure returns the first Failure in err's chain, or nil.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return nil
}

// DisplayString returns the canonical diagnostic for a failure or raw error.
// Other errors render as their Error text; nil renders as "".
func DisplayString(err error) string {
	if err == nil {
		return ""
	}
	if f := AsFailure(err); f != nil {
		return f.Error()
	}
	if r := AsRawCommandError(err); r != nil {
		return r.Error()
	}
	return err.Error()
}
