package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/propyaml/internal/engine"
)

var (
	renderSortKeys bool
	renderFlat     bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Print the YAML a single document converts to",
	Long: `Render a single .properties or YAML document the way convert would, and print
the result to stdout. Nothing is written.

With --flat, print the dotted key=value pairs of the document instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newEngine().RenderDocument(commandContext(cmd), &engine.RenderRequest{
			Path:     args[0],
			SortKeys: renderSortKeys,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if renderFlat {
			for _, e := range result.Flat {
				fmt.Fprintf(stdout, "%s=%s\n", e.Key, e.Value)
			}
			return nil
		}
		fmt.Fprint(stdout, result.Content)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVarP(&renderSortKeys, "sort-keys", "s", false, "Sort keys alphabetically at every level")
	renderCmd.Flags().BoolVar(&renderFlat, "flat", false, "Print dotted key=value pairs instead of YAML")
}
