package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nerdtronik/tfdiag/internal/outcome"
	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

func TestClassifyCmd(t *testing.T) {
	okInit := writeTemp(t, "init.yaml", "kind: init\nexit_code: 0\n")
	failedPlan := writeTemp(t, "plan.yaml", "kind: plan\ncommand: plan -out=x\nexit_code: 1\nduration_seconds: 1.23456\n")
	changedPlan := writeTemp(t, "plan-changes.json", `{"kind": "plan", "exit_code": 2}`)
	rawApply := writeTemp(t, "apply.yaml", "kind: apply\nexit_code: 1\nstderr: no such file\nerror: open failed\n")
	unknownKind := writeTemp(t, "deploy.yaml", "kind: deploy\nexit_code: 0\n")
	planCodes := writeTemp(t, "config.yml", "success_codes:\n  plan: [0, 2]\n")

	tests := map[string]struct {
		args     []string
		wantCode int
		contains []string
	}{
		"all ok": {
			args:     []string{"classify", okInit},
			wantCode: ExitSuccess,
			contains: []string{"ok       " + okInit + " (init)"},
		},
		"logical failure": {
			args:     []string{"classify", okInit, failedPlan},
			wantCode: ExitFailureFound,
			contains: []string{
				"failed   " + failedPlan + " (plan)",
				"terraform plan failed with exit code 1\nCommand: plan -out=x\nDuration: 1.2346s\n",
			},
		},
		"raw execution failure": {
			args:     []string{"classify", rawApply},
			wantCode: ExitFailureFound,
			contains: []string{"(apply)", "Code: 1\nStderr:\nno such file\nDetails:\nopen failed\n"},
		},
		"detailed exitcode without config fails": {
			args:     []string{"classify", changedPlan},
			wantCode: ExitFailureFound,
		},
		"detailed exitcode accepted with config": {
			args:     []string{"--config", planCodes, "classify", changedPlan},
			wantCode: ExitSuccess,
		},
		"unknown kind is invalid": {
			args:     []string{"classify", okInit, unknownKind},
			wantCode: ExitInvalidInput,
			contains: []string{"invalid  " + unknownKind, "unknown failure kind"},
		},
		"missing file is invalid": {
			args:     []string{"classify", "/nonexistent/outcome.yaml"},
			wantCode: ExitInvalidInput,
			contains: []string{"failed to read outcome record"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, stderr, code := executeCommand(t, tt.args...)
			assert.Equal(t, tt.wantCode, code, "stdout: %s\nstderr: %s", stdout, stderr)
			for _, c := range tt.contains {
				assert.Contains(t, stdout, c)
			}
		})
	}
}

func TestClassifyCmd_PreservesOrder(t *testing.T) {
	var args []string
	for i := 0; i < 20; i++ {
		code := i % 2
		args = append(args, writeTemp(t, fmt.Sprintf("r%02d.yaml", i), fmt.Sprintf("kind: refresh\nexit_code: %d\n", code)))
	}

	stdout, stderr, code := executeCommand(t, append([]string{"classify", "--output", "yaml"}, args...)...)
	require.Equal(t, ExitFailureFound, code, stderr)

	var results []classifyResult
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, len(args))
	for i, r := range results {
		assert.Equal(t, args[i], r.File)
		if i%2 == 0 {
			assert.Equal(t, statusOK, r.Status)
		} else {
			assert.Equal(t, statusFailed, r.Status)
			assert.True(t, strings.HasPrefix(r.Diagnostic, "terraform refresh failed with exit code 1"))
		}
		assert.Equal(t, "refresh", r.Kind)
	}
}

func TestClassifyCmd_StateCategory(t *testing.T) {
	rec := writeTemp(t, "mv.yaml", "kind: state mv\nexit_code: 1\nstderr: lock\n")

	stdout, stderr, code := executeCommand(t, "classify", "-o", "yaml", rec)
	require.Equal(t, ExitFailureFound, code, stderr)

	var results []classifyResult
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "state mv", results[0].Kind)
	assert.Equal(t, "state", results[0].Category)
}

func TestClassifyCmd_RequiresArgs(t *testing.T) {
	_, _, code := executeCommand(t, "classify")
	assert.Equal(t, ExitInvalidArguments, code)
}

func TestClassifyFiles_Cancelled(t *testing.T) {
	t.Parallel()

	paths := []string{
		writeTemp(t, "init.yaml", "kind: init\nexit_code: 0\n"),
		writeTemp(t, "plan.yaml", "kind: plan\nexit_code: 1\n"),
	}
	classifier, err := outcome.NewClassifier()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)

	results := classifyFiles(cmd, classifier, paths, 1)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.File)
		assert.Equal(t, statusInvalid, r.Status)
		cliErr := tferrors.AsCLIError(r.err)
		require.NotNil(t, cliErr)
		assert.Equal(t, tferrors.Runtime, cliErr.Category)
		assert.ErrorIs(t, r.err, context.Canceled)
	}
	assert.Equal(t, NewExitError(ExitInvalidInput), classifyExit(results))
}
