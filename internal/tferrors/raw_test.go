package tferrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawCommandError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		detail string
		code   int
		stdout string
		stderr string
		want   string
	}{
		"empty stdout omitted": {
			detail: "open failed",
			code:   1,
			stderr: "no such file",
			want:   "Code: 1\nStderr:\nno such file\nDetails:\nopen failed",
		},
		"stdout rendered before stderr": {
			detail: "exit status 2",
			code:   2,
			stdout: "partial output",
			stderr: "Error: bad",
			want:   "Code: 2\nStdout:\npartial output\nStderr:\nError: bad\nDetails:\nexit status 2",
		},
		"stderr block always present": {
			detail: "signal: killed",
			code:   -1,
			want:   "Code: -1\nStderr:\n\nDetails:\nsignal: killed",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			e := NewRawError(tt.detail, tt.code, tt.stdout, tt.stderr)
			assert.Equal(t, tt.want, e.Error())
			assert.Equal(t, tt.want, DisplayString(e))
		})
	}
}

func TestRawCommandError_Accessors(t *testing.T) {
	t.Parallel()

	e := NewRawError("detail", 127, "out", "err")
	assert.Equal(t, "detail", e.Detail())
	assert.Equal(t, 127, e.ExitCode())
	assert.Equal(t, "out", e.Stdout())
	assert.Equal(t, "err", e.Stderr())
}

func TestRawCommandError_Matching(t *testing.T) {
	t.Parallel()

	e := NewRawError("exec: terraform: not found", 127, "", "")
	wrapped := fmt.Errorf("running init: %w", e)

	assert.True(t, errors.Is(wrapped, ErrRawCommand))
	assert.True(t, IsRawCommandError(wrapped))
	require.NotNil(t, AsRawCommandError(wrapped))
	assert.Equal(t, 127, AsRawCommandError(wrapped).ExitCode())

	// Raw errors sit outside the kind taxonomy.
	assert.False(t, errors.Is(e, ErrInit))
	assert.False(t, IsKind(e, KindInit))
	assert.False(t, IsCategory(e, KindState))
}
