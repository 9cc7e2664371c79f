package cli

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

const renderUsage = `tfdiag render --kind <kind> --message <text> [--command <cmd>] [--stderr <text> | --stderr-file <path>] [--duration <seconds>]`

var (
	renderKind       string
	renderMessage    string
	renderCommand    string
	renderStderr     string
	renderStderrFile string
	renderDuration   string
)

// failureView is the YAML form of a rendered failure.
type failureView struct {
	Kind            string   `yaml:"kind"`
	Category        string   `yaml:"category"`
	Message         string   `yaml:"message"`
	Command         string   `yaml:"command,omitempty"`
	Stderr          string   `yaml:"stderr,omitempty"`
	DurationSeconds *float64 `yaml:"duration_seconds,omitempty"`
	Display         string   `yaml:"display"`
}

func newFailureView(f *tferrors.Failure) failureView {
	v := failureView{
		Kind:     f.Kind().String(),
		Category: f.Category().String(),
		Message:  f.Message(),
		Command:  f.Command(),
		Stderr:   f.Stderr(),
		Display:  f.Error(),
	}
	if secs, ok := f.Duration(); ok {
		v.DurationSeconds = &secs
	}
	return v
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the diagnostic for a subcommand failure",
	Long: `Render the diagnostic string for a failure of one terraform subcommand.

Lines are emitted in a fixed order and omitted when empty:
  <message>
  Command: <command>
  Duration: <seconds, 4 decimals>s
  Details:
  <stderr>`,
	Example: `  tfdiag render --kind plan --message "plan failed" --command "plan -out=x" --duration 1.23456
  tfdiag render --kind "state mv" --message "move failed" --stderr-file stderr.log`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderKind, "kind", "k", "", "Failure kind (see 'tfdiag kinds')")
	renderCmd.Flags().StringVarP(&renderMessage, "message", "m", "", "Primary message")
	renderCmd.Flags().StringVar(&renderCommand, "command", "", "Command that was executed")
	renderCmd.Flags().StringVar(&renderStderr, "stderr", "", "Captured standard error")
	renderCmd.Flags().StringVar(&renderStderrFile, "stderr-file", "", "Read captured standard error from a file")
	renderCmd.Flags().StringVar(&renderDuration, "duration", "", "Elapsed time in seconds (omit when unknown)")
	renderCmd.MarkFlagsMutuallyExclusive("stderr", "stderr-file")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderKind == "" {
		return tferrors.MissingFlag("kind", renderUsage)
	}
	if renderMessage == "" {
		return tferrors.MissingFlag("message", renderUsage)
	}
	format, err := resolveOutput()
	if err != nil {
		return err
	}

	opts := []tferrors.Option{tferrors.WithCommand(renderCommand)}

	stderr := renderStderr
	if renderStderrFile != "" {
		data, err := os.ReadFile(renderStderrFile)
		if err != nil {
			return tferrors.WrapWithMessage(err, tferrors.Input,
				fmt.Sprintf("failed to read stderr file: %s", renderStderrFile))
		}
		stderr = string(data)
	}
	opts = append(opts, tferrors.WithStderr(stderr))

	if cmd.Flags().Changed("duration") {
		secs, err := parseSeconds(renderDuration)
		if err != nil {
			return err
		}
		opts = append(opts, tferrors.WithDurationSeconds(secs))
	}

	f, err := tferrors.NewFailureFromString(renderKind, renderMessage, opts...)
	if err != nil {
		return err
	}

	if format == outputYAML {
		return writeYAML(cmd, newFailureView(f))
	}
	tferrors.FprintFailure(cmd.OutOrStdout(), f, colorsEnabled(cmd.OutOrStdout()))
	return nil
}

func parseSeconds(s string) (float64, error) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, tferrors.InvalidDuration(s)
	}
	return secs, nil
}
