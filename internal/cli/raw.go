package cli

import (
	"github.com/spf13/cobra"

	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

const rawUsage = `tfdiag raw --detail <text> --code <exit-code> [--stdout <text>] [--stderr <text>]`

var (
	rawDetail string
	rawCode   int
	rawStdout string
	rawStderr string
)

// rawView is the YAML form of a raw execution error.
type rawView struct {
	ExitCode int    `yaml:"exit_code"`
	Stdout   string `yaml:"stdout,omitempty"`
	Stderr   string `yaml:"stderr"`
	Detail   string `yaml:"detail"`
	Display  string `yaml:"display"`
}

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Render the diagnostic for a process execution failure",
	Long: `Render the diagnostic for a failure of the process execution step itself,
before any subcommand interpretation. The field order is fixed:
  Code: <exit code>
  Stdout: (only when non-empty)
  Stderr: (always)
  Details:`,
	Example: `  tfdiag raw --code 1 --stderr "no such file" --detail "open failed"`,
	Args:    cobra.NoArgs,
	RunE:    runRaw,
}

func init() {
	rawCmd.Flags().StringVar(&rawDetail, "detail", "", "Underlying error detail")
	rawCmd.Flags().IntVar(&rawCode, "code", 0, "Process exit code")
	rawCmd.Flags().StringVar(&rawStdout, "stdout", "", "Captured standard output")
	rawCmd.Flags().StringVar(&rawStderr, "stderr", "", "Captured standard error")
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	if rawDetail == "" {
		return tferrors.MissingFlag("detail", rawUsage)
	}
	if !cmd.Flags().Changed("code") {
		return tferrors.MissingFlag("code", rawUsage)
	}
	format, err := resolveOutput()
	if err != nil {
		return err
	}

	e := tferrors.NewRawError(rawDetail, rawCode, rawStdout, rawStderr)
	if format == outputYAML {
		return writeYAML(cmd, rawView{
			ExitCode: e.ExitCode(),
			Stdout:   e.Stdout(),
			Stderr:   e.Stderr(),
			Detail:   e.Detail(),
			Display:  e.Error(),
		})
	}
	tferrors.FprintFailure(cmd.OutOrStdout(), e, colorsEnabled(cmd.OutOrStdout()))
	return nil
}
