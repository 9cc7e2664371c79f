package tferrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFailure_PlainMatchesDisplayString(t *testing.T) {
	t.Parallel()

	f, err := NewFailure(KindValidate, "validate failed",
		WithCommand("validate -json"), WithStderr("Error: invalid block"))
	require.NoError(t, err)
	raw := NewRawError("exit status 1", 1, "out", "err")

	assert.Equal(t, f.Error(), FormatFailure(f, false))
	assert.Equal(t, raw.Error(), FormatFailure(raw, false))
	assert.Equal(t, "other", FormatFailure(errors.New("other"), false))
}

func TestFormatFailure_ColorKeepsContent(t *testing.T) {
	// Mutates color.NoColor; not parallel.
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	f, err := NewFailure(KindGraph, "graph failed",
		WithCommand("graph"), WithDurationSeconds(0.25), WithStderr("cycle"))
	require.NoError(t, err)

	out := FormatFailure(f, true)
	assert.Contains(t, out, "graph failed")
	assert.Contains(t, out, "Command:")
	assert.Contains(t, out, "0.2500s")
	assert.Contains(t, out, "cycle")
	assert.Contains(t, out, "\x1b[")

	raw := FormatFailure(NewRawError("boom", 3, "", "stderr"), true)
	assert.NotContains(t, raw, "Stdout:")
	assert.Less(t, strings.Index(raw, "Code:"), strings.Index(raw, "Stderr:"))
	assert.Less(t, strings.Index(raw, "Stderr:"), strings.Index(raw, "Details:"))
}

func TestFprintFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintFailure(&buf, NewRawError("d", 1, "", "e"), false)
	assert.Equal(t, "Code: 1\nStderr:\ne\nDetails:\nd\n", buf.String())

	buf.Reset()
	FprintFailure(&buf, nil, false)
	assert.Empty(t, buf.String())
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *CLIError
		want []string
	}{
		"unknown kind": {
			err:  UnknownKind("deploy"),
			want: []string{"Error [Configuration Error]: unknown failure kind: \"deploy\"", "To fix this:", "  • List kinds with: tfdiag kinds"},
		},
		"missing flag with usage": {
			err:  MissingFlag("kind", "tfdiag render --kind <kind> --message <text>"),
			want: []string{"Error [Argument Error]: --kind is required", "Usage: tfdiag render --kind <kind>"},
		},
		"record read error": {
			err:  RecordReadError("a.yaml", errors.New("no such file")),
			want: []string{"Error [Input Error]: failed to read outcome record: a.yaml: no such file"},
		},
		"cancelled classification": {
			err:  ClassificationCancelled("b.yaml", context.Canceled),
			want: []string{"Error [Runtime Error]: classification of b.yaml cancelled: context canceled", "  • Re-run tfdiag classify"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := FormatErrorPlain(tt.err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}

	assert.Empty(t, FormatErrorPlain(nil))
}

func TestWrapWithMessage_Unwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	wrapped := WrapWithMessage(cause, Runtime, "doing thing")
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
	assert.Equal(t, "Runtime Error", Runtime.String())
	assert.Equal(t, "Error", ErrorCategory(99).String())
}
