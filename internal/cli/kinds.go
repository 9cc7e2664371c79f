package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

// kindView is the YAML form of one taxonomy entry.
type kindView struct {
	Kind        string `yaml:"kind"`
	Ident       string `yaml:"ident"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List failure kinds and their categories",
	Example: `  tfdiag kinds
  tfdiag kinds --output yaml`,
	Args: cobra.NoArgs,
	RunE: runKinds,
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput()
	if err != nil {
		return err
	}

	kinds := tferrors.Kinds()
	if format == outputYAML {
		views := make([]kindView, 0, len(kinds))
		for _, k := range kinds {
			views = append(views, kindView{
				Kind:        k.String(),
				Ident:       k.Ident(),
				Category:    k.Category().String(),
				Description: k.Description(),
			})
		}
		return writeYAML(cmd, views)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tIDENT\tCATEGORY\tDESCRIPTION")
	for _, k := range kinds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k, k.Ident(), k.Category(), k.Description())
	}
	return w.Flush()
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
