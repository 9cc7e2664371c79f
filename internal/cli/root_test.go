// Tests share the global rootCmd and flag variables, so they do not run in parallel.

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// executeCommand runs rootCmd with args in an isolated environment and
// returns stdout, stderr and the exit code.
func executeCommand(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	resetFlags(rootCmd)
	activeConfig = nil

	if !containsFlag(args, "--config") {
		args = append([]string{"--config", filepath.Join(dir, "none.yml")}, args...)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), ExitCode(err)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "tfdiag", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)

	for _, name := range []string{"config", "no-color", "output"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
	}

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"kinds", "render", "raw", "classify", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestKindsCmd(t *testing.T) {
	stdout, stderr, code := executeCommand(t, "kinds")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "KIND")
	assert.Contains(t, stdout, "state replace-provider")
	assert.Contains(t, stdout, "StateReplaceProvider")
	assert.Contains(t, stdout, "'terraform logout' failed")
}

func TestKindsCmd_YAML(t *testing.T) {
	stdout, stderr, code := executeCommand(t, "kinds", "--output", "yaml")
	require.Equal(t, ExitSuccess, code, stderr)

	var views []kindView
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &views))
	require.Len(t, views, 25)

	byKind := make(map[string]kindView)
	for _, v := range views {
		byKind[v.Kind] = v
	}
	assert.Equal(t, "state", byKind["state mv"].Category)
	assert.Equal(t, "plan", byKind["plan"].Category)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, stderr, code := executeCommand(t, "kinds", "--output", "xml")
	assert.Equal(t, ExitInvalidArguments, code)
	assert.Contains(t, stderr, "invalid output format: xml")
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeTemp(t, "config.yml", "max_parallel: 0\n")
	_, stderr, code := executeCommand(t, "--config", cfg, "kinds")
	assert.Equal(t, ExitInvalidArguments, code)
	assert.Contains(t, stderr, "config validation failed")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, code := executeCommand(t, "version", "--plain")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "tfdiag dev")
	assert.Contains(t, stdout, "platform: ")
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, code := executeCommand(t, "deploy")
	assert.Equal(t, ExitInvalidArguments, code)
	assert.Contains(t, stderr, "Error: ")
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":          {err: nil, want: ExitSuccess},
		"failure found":      {err: NewExitError(ExitFailureFound), want: 1},
		"invalid input":      {err: NewExitError(ExitInvalidInput), want: 4},
		"generic error":      {err: errors.New("generic"), want: ExitInvalidArguments},
		"wrapped exit error": {err: errors.Join(errors.New("ctx"), NewExitError(ExitFailureFound)), want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}

	assert.Equal(t, "exit code 4", NewExitError(4).Error())
}
