package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "scenario-parser/internal/errors"
	"scenario-parser/internal/logging"
	"scenario-parser/internal/models"
)

// source is one scenario text to parse.
type source struct {
	name string
	text string
}

func newParseCmd(app *App) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "parse [files...|-]",
		Short: "Extract a scenario from commentary text",
		Long: `Parse reads scenario text from the named files, or from stdin when no
file or "-" is given, and prints the extracted record.

With --json the interchange document is printed; several inputs produce
a JSON array in input order.`,
		Example: `  scenario parse gold.txt
  echo "GOLD 日足ベースのサポートラインは4317" | scenario parse --json
  scenario parse --as-of 2025-10-21 morning.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fallback *time.Time
			if asOf != "" {
				lt, err := models.ParseLocalTime(asOf)
				if err != nil {
					return apperrors.Wrapf(err, "invalid --as-of %q", asOf)
				}
				fallback = &lt.Time
			}

			sources, err := readSources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			results := make([]*models.ParsedScenario, 0, len(sources))
			for _, src := range sources {
				result, err := app.parseSource(src, fallback)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			output := app.output(cmd)
			if output.IsJSON() {
				if len(results) == 1 {
					return output.JSON(results[0])
				}
				return output.JSON(results)
			}
			for i, result := range results {
				if i > 0 {
					output.Println()
				}
				if len(sources) > 1 {
					output.Info("== %s ==", sources[i].name)
				}
				printScenario(output, result, app.Config.UI.DateFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "analysis date to use when the text has none (2006-01-02[ 15:04])")

	return cmd
}

// parseSource runs the parser on one input under its own request id.
func (app *App) parseSource(src source, asOf *time.Time) (*models.ParsedScenario, error) {
	logger := logging.WithOperation(
		logging.WithSource(logging.WithRequestID(app.Logger, uuid.NewString()), src.name),
		"parse",
	)

	start := time.Now()
	var (
		result *models.ParsedScenario
		err    error
	)
	if asOf != nil {
		result, err = app.Parser.ParseAsOf(src.text, *asOf)
	} else {
		result, err = app.Parser.Parse(src.text)
	}
	if err != nil {
		logging.LogParseError(logger, src.name, err)
		return nil, apperrors.Wrapf(err, "parsing %s", src.name)
	}

	logging.LogParse(logger, result, time.Since(start))
	return result, nil
}

// readSources reads every named file, or stdin for no names and for "-".
func readSources(stdin io.Reader, args []string) ([]source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]source, 0, len(args))
	stdinRead := false
	for _, name := range args {
		if name == "-" {
			if stdinRead {
				return nil, fmt.Errorf("%w: stdin given more than once", apperrors.ErrInvalidInput)
			}
			stdinRead = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, apperrors.Wrap(err, "reading stdin")
			}
			sources = append(sources, source{name: "stdin", text: string(data)})
			continue
		}

		data, err := os.ReadFile(name)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrDataNotFound, name)
			}
			return nil, apperrors.Wrapf(err, "reading %s", name)
		}
		sources = append(sources, source{name: name, text: string(data)})
	}
	return sources, nil
}

// printScenario renders a human-readable summary of s.
func printScenario(output *Output, s *models.ParsedScenario, dateFormat string) {
	symbol := "(unknown)"
	if s.Symbol != nil {
		symbol = *s.Symbol
	}
	output.Bold("Scenario %s", symbol)
	output.Printf("  Analysis date: %s\n", FormatLocalTime(s.AnalysisDate, dateFormat))

	if len(s.SupportLevels)+len(s.ResistanceLevels)+len(s.SupportZones)+
		len(s.ResistanceZones)+len(s.TrendLines)+len(s.Notes) == 0 {
		output.Println()
		output.Warning("No levels, zones, trend lines or notes found")
		return
	}

	if len(s.SupportLevels)+len(s.ResistanceLevels) > 0 {
		output.Println()
		table := NewTable(output, "SIDE", "PRICE", "TF", "CONTEXT")
		for _, l := range s.ResistanceLevels {
			table.AddRow("R", FormatPrice(l.Price), FormatTimeframe(l.Timeframe), TruncateString(l.Description, 48))
		}
		for _, l := range s.SupportLevels {
			table.AddRow("S", FormatPrice(l.Price), FormatTimeframe(l.Timeframe), TruncateString(l.Description, 48))
		}
		table.Render()
	}

	if len(s.SupportZones)+len(s.ResistanceZones) > 0 {
		output.Println()
		output.Bold("Zones")
		for _, z := range s.ResistanceZones {
			output.Printf("  %s %s\n", output.Red("R"), FormatZone(z))
		}
		for _, z := range s.SupportZones {
			output.Printf("  %s %s\n", output.Green("S"), FormatZone(z))
		}
	}

	if len(s.TrendLines) > 0 {
		output.Println()
		output.Bold("Trend lines")
		for _, tl := range s.TrendLines {
			arrow := output.Red("↓")
			if tl.Rising() {
				arrow = output.Green("↑")
			}
			output.Printf("  %s %s (%s) -> %s (%s)\n", arrow,
				FormatPrice(tl.StartPrice), FormatLocalTime(tl.StartTime, dateFormat),
				FormatPrice(tl.EndPrice), FormatLocalTime(tl.EndTime, dateFormat))
		}
	}

	if len(s.Notes) > 0 {
		output.Println()
		output.Bold("Notes")
		for _, n := range s.Notes {
			output.Printf("  • %s\n", n)
		}
	}
}
