package outcome

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

// Record is the on-disk form of one captured invocation. Records are YAML;
// JSON files load as well since JSON is a subset of YAML.
type Record struct {
	Kind            string   `yaml:"kind"`
	Command         string   `yaml:"command,omitempty"`
	ExitCode        int      `yaml:"exit_code"`
	Stdout          string   `yaml:"stdout,omitempty"`
	Stderr          string   `yaml:"stderr,omitempty"`
	DurationSeconds *float64 `yaml:"duration_seconds,omitempty"`
	// Error is set by the execution layer when the process itself could
	// not be run to completion.
	Error string `yaml:"error,omitempty"`
}

// LoadRecord reads and decodes a record file.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	return ParseRecord(data)
}

// ParseRecord decodes a YAML or JSON record.
func ParseRecord(data []byte) (*Record, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	if r.Kind == "" {
		return nil, errors.New("decoding record: missing kind")
	}
	if r.DurationSeconds != nil && *r.DurationSeconds < 0 {
		return nil, fmt.Errorf("decoding record: negative duration_seconds %v", *r.DurationSeconds)
	}
	return &r, nil
}

// Outcome returns the captured outcome of the record.
func (r *Record) Outcome() Outcome {
	o := Outcome{ExitCode: r.ExitCode, Stdout: r.Stdout, Stderr: r.Stderr}
	if r.DurationSeconds != nil {
		o.Seconds = ElapsedSeconds(*r.DurationSeconds)
	}
	return o
}

// Evaluate classifies the record. An execution error yields a
// RawCommandError; otherwise the classifier decides. An unknown kind is a
// configuration error.
func (r *Record) Evaluate(c *Classifier) error {
	kind, err := tferrors.ParseKind(r.Kind)
	if err != nil {
		return err
	}
	o := r.Outcome()
	if r.Error != "" {
		return FromExecError(errors.New(r.Error), o)
	}
	return c.Classify(kind, r.Command, o)
}
