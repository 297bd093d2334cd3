package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

func newSymbolsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List instrument aliases",
		Long:  "List every alias the parser recognizes and the identifier it resolves to.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			aliases := app.Parser.Symbols().Aliases()

			if output.IsJSON() {
				return output.JSON(aliases)
			}

			keys := make([]string, 0, len(aliases))
			for k := range aliases {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool {
				if aliases[keys[i]] != aliases[keys[j]] {
					return aliases[keys[i]] < aliases[keys[j]]
				}
				return keys[i] < keys[j]
			})

			table := NewTable(output, "ALIAS", "SYMBOL")
			for _, k := range keys {
				table.AddRow(k, aliases[k])
			}
			table.Render()
			output.Println()
			output.Dim("%d aliases", len(keys))
			return nil
		},
	}
}
