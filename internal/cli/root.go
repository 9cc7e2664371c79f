// Package cli implements the tfdiag command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nerdtronik/tfdiag/internal/config"
	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

var (
	configPath   string
	noColor      bool
	outputFormat string

	// activeConfig is loaded by the root PersistentPreRunE.
	activeConfig *config.Configuration
)

var rootCmd = &cobra.Command{
	Use:   "tfdiag",
	Short: "Classify and render terraform command failures",
	Long: `tfdiag turns the captured result of a terraform invocation (exit code,
stdout, stderr, elapsed time) into a classified failure with a stable,
deterministic diagnostic.

Failures are tagged with a kind from a closed taxonomy (init, plan, apply,
state mv, ...). State subcommand kinds also belong to the "state" category.`,
	Example: `  # List every failure kind
  tfdiag kinds

  # Render the diagnostic for a plan failure
  tfdiag render --kind plan --message "plan failed" --command "plan -out=x" --duration 1.23456

  # Classify captured outcomes, exit 1 if any failed
  tfdiag classify outcomes/*.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadCommandConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default: .tfdiag/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text | yaml (default from config)")
}

// Execute runs the root command. Errors are printed to stderr; the returned
// error maps to an exit code through ExitCode.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	return reportError(rootCmd.ErrOrStderr(), err)
}

// reportError prints err and converts it into an ExitError.
func reportError(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if cliErr := tferrors.AsCLIError(err); cliErr != nil {
		tferrors.FprintError(w, cliErr, colorsEnabled(w))
		if cliErr.Category == tferrors.Input {
			return NewExitError(ExitInvalidInput)
		}
		return NewExitError(ExitInvalidArguments)
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return NewExitError(ExitInvalidArguments)
}

func loadCommandConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	activeConfig = cfg
	return nil
}

// resolveOutput returns the output format from the flag or the config.
func resolveOutput() (string, error) {
	format := outputFormat
	if format == "" && activeConfig != nil {
		format = activeConfig.Output
	}
	switch format {
	case "", outputText:
		return outputText, nil
	case outputYAML:
		return outputYAML, nil
	default:
		return "", tferrors.InvalidOutputFormat(format)
	}
}

// colorsEnabled reports whether output to w should be colored.
func colorsEnabled(w io.Writer) bool {
	if noColor || (activeConfig != nil && activeConfig.NoColor) {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
