package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nerdtronik/tfdiag/internal/outcome"
	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

const (
	statusOK      = "ok"
	statusFailed  = "failed"
	statusInvalid = "invalid"
)

// classifyResult is the outcome of classifying one record file.
type classifyResult struct {
	File       string `yaml:"file"`
	Status     string `yaml:"status"`
	Kind       string `yaml:"kind,omitempty"`
	Category   string `yaml:"category,omitempty"`
	Diagnostic string `yaml:"diagnostic,omitempty"`

	err error
}

var classifyCmd = &cobra.Command{
	Use:   "classify <record-file>...",
	Short: "Classify captured terraform outcomes",
	Long: `Load outcome records (YAML or JSON) and classify each one as a success or a
failure using the configured success codes.

A record looks like:
  kind: plan
  command: terraform plan -detailed-exitcode
  exit_code: 2
  stderr: ""
  duration_seconds: 12.5

A record with an 'error' field describes an execution failure and renders as
a raw command error.

Exit codes: 0 all succeeded, 1 at least one failure, 4 a record was invalid.`,
	Example: `  tfdiag classify plan.yaml apply.yaml
  tfdiag classify --output yaml outcomes/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput()
	if err != nil {
		return err
	}
	classifier, err := activeConfig.Classifier()
	if err != nil {
		return err
	}

	results := classifyFiles(cmd, classifier, args, activeConfig.MaxParallel)

	if format == outputYAML {
		if err := writeYAML(cmd, results); err != nil {
			return err
		}
	} else {
		printClassifyText(cmd.OutOrStdout(), results)
	}
	return classifyExit(results)
}

// classifyFiles evaluates every record concurrently and returns the results
// in input order. A bad record never cancels the others.
func classifyFiles(cmd *cobra.Command, classifier *outcome.Classifier, paths []string, limit int) []classifyResult {
	results := make([]classifyResult, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = invalidResult(path, tferrors.ClassificationCancelled(path, ctx.Err()))
				return nil
			}
			results[i] = classifyFile(classifier, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func classifyFile(classifier *outcome.Classifier, path string) classifyResult {
	rec, err := outcome.LoadRecord(path)
	if err != nil {
		return invalidResult(path, tferrors.RecordReadError(path, err))
	}
	err = rec.Evaluate(classifier)
	switch {
	case err == nil:
		kind, _ := tferrors.ParseKind(rec.Kind)
		return classifyResult{File: path, Status: statusOK, Kind: kind.String(), Category: kind.Category().String()}
	case tferrors.IsCLIError(err):
		return invalidResult(path, err)
	default:
		r := classifyResult{File: path, Status: statusFailed, Diagnostic: tferrors.DisplayString(err), err: err}
		if f := tferrors.AsFailure(err); f != nil {
			r.Kind = f.Kind().String()
			r.Category = f.Category().String()
		} else if kind, perr := tferrors.ParseKind(rec.Kind); perr == nil {
			r.Kind = kind.String()
			r.Category = kind.Category().String()
		}
		return r
	}
}

func invalidResult(path string, err error) classifyResult {
	return classifyResult{File: path, Status: statusInvalid, Diagnostic: err.Error(), err: err}
}

func printClassifyText(w io.Writer, results []classifyResult) {
	useColors := colorsEnabled(w)
	for _, r := range results {
		switch r.Status {
		case statusOK:
			fmt.Fprintf(w, "%-8s %s (%s)\n", r.Status, r.File, r.Kind)
		case statusFailed:
			fmt.Fprintf(w, "%-8s %s (%s)\n", r.Status, r.File, r.Kind)
			tferrors.FprintFailure(w, r.err, useColors)
		default:
			fmt.Fprintf(w, "%-8s %s: %s\n", r.Status, r.File, r.Diagnostic)
		}
	}
}

func classifyExit(results []classifyResult) error {
	code := ExitSuccess
	for _, r := range results {
		switch r.Status {
		case statusInvalid:
			return NewExitError(ExitInvalidInput)
		case statusFailed:
			code = ExitFailureFound
		}
	}
	if code != ExitSuccess {
		return NewExitError(code)
	}
	return nil
}
