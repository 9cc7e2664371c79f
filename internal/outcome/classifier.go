package outcome

import (
	"slices"

	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

// Predicate decides whether an outcome is a success for one subcommand.
type Predicate func(Outcome) bool

// ExitCodes returns a predicate accepting exactly the given exit codes.
// "plan -detailed-exitcode" returns 2 when changes are present, so a plan
// classifier typically uses ExitCodes(0, 2).
func ExitCodes(codes ...int) Predicate {
	accepted := slices.Clone(codes)
	return func(o Outcome) bool {
		return slices.Contains(accepted, o.ExitCode)
	}
}

// Classifier maps outcomes to failures using per-kind success predicates.
// The zero value is not usable; build one with NewClassifier. A Classifier
// is read-only after construction and safe for concurrent use.
type Classifier struct {
	predicates map[tferrors.Kind]Predicate
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier) error

// WithPredicate sets the success predicate for kind.
func WithPredicate(kind tferrors.Kind, p Predicate) ClassifierOption {
	return func(c *Classifier) error {
		if !kind.Valid() {
			return tferrors.UnknownKind(string(kind))
		}
		c.predicates[kind] = p
		return nil
	}
}

// WithSuccessCodes treats the given exit codes as success for kind.
func WithSuccessCodes(kind tferrors.Kind, codes ...int) ClassifierOption {
	return WithPredicate(kind, ExitCodes(codes...))
}

// NewClassifier creates a classifier. Kinds without a predicate use
// Outcome.Succeeded.
func NewClassifier(opts ...ClassifierOption) (*Classifier, error) {
	c := &Classifier{predicates: make(map[tferrors.Kind]Predicate)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Succeeded reports whether o is a success for kind.
func (c *Classifier) Succeeded(kind tferrors.Kind, o Outcome) bool {
	if p, ok := c.predicates[kind]; ok && p != nil {
		return p(o)
	}
	return o.Succeeded()
}

// Classify returns nil when o is a success for kind, otherwise a
// *tferrors.Failure tagged with kind embedding the stderr and duration.
// An unknown kind is a configuration error.
func (c *Classifier) Classify(kind tferrors.Kind, command string, o Outcome) error {
	if !kind.Valid() {
		return tferrors.UnknownKind(string(kind))
	}
	if c.Succeeded(kind, o) {
		return nil
	}
	f, err := tferrors.NewFailure(kind, failureMessage(kind, o.ExitCode),
		tferrors.WithCommand(command),
		tferrors.WithStderr(o.Stderr),
		o.durationOption(),
	)
	if err != nil {
		return err
	}
	return f
}
