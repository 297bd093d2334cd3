package cli

import (
	"github.com/spf13/cobra"
)

// sampleScenario is the commentary the examples command parses live.
const sampleScenario = `現在（2025年10月21日 8時00分）のGOLD環境認識
日足ベースのサポートラインは4317近辺と4218近辺
週足ベースのレジスタンスラインは4443近辺と4734近辺
4317近辺～4320近辺のサポート帯を下抜けなければ上昇トレンド継続
9時に4300から15時に4350への上昇を想定
急落に注意`

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display example invocations and the result of parsing a sample scenario.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			result, err := app.Parser.Parse(sampleScenario)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"text":   sampleScenario,
					"result": result,
				})
			}

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Parse Commentary",
					commands: []string{
						"scenario parse gold.txt                 # Summary table",
						"scenario parse --json gold.txt          # Interchange document",
						"pbpaste | scenario parse                # Read from stdin",
						"scenario parse a.txt b.txt --json       # JSON array, input order",
					},
				},
				{
					title: "Undated Text",
					commands: []string{
						"scenario parse --as-of 2025-10-21 note.txt",
						"scenario parse --as-of \"2025-10-21 08:00\" note.txt",
					},
				},
				{
					title: "Check Documents",
					commands: []string{
						"scenario parse --json gold.txt > gold.json",
						"scenario validate gold.json",
					},
				},
				{
					title: "Configuration",
					commands: []string{
						"scenario config path                    # Where config.toml lives",
						"scenario symbols                        # Built-in and custom aliases",
						"SCENARIO_DEFAULT_TIMEFRAME= scenario parse note.txt  # Drop untagged levels",
					},
				},
			}

			for _, ex := range examples {
				output.Info("# %s", ex.title)
				for _, c := range ex.commands {
					output.Printf("  %s\n", c)
				}
				output.Println()
			}

			output.Bold("Sample")
			output.Println(output.DimText(sampleScenario))
			output.Println()
			printScenario(output, result, app.Config.UI.DateFormat)
			return nil
		},
	}
}
