package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apperrors "scenario-parser/internal/errors"
	"scenario-parser/internal/models"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Check an interchange document",
		Long: `Validate decodes a scenario document (a single object or an array of
objects, as printed by 'parse --json') and checks that vocabulary tags,
zone bounds, prices and notes are well formed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			data, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			scenarios, err := decodeScenarios(data)
			if err == nil {
				for i, s := range scenarios {
					if verr := s.Validate(); verr != nil {
						err = fmt.Errorf("document %d: %w", i, verr)
						break
					}
				}
			}

			if err != nil {
				if output.IsJSON() {
					_ = output.JSON(map[string]interface{}{"valid": false, "error": err.Error()})
				} else {
					output.Error("✗ %s: %v", args[0], err)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"valid": true, "documents": len(scenarios)})
			}
			output.Success("✓ %s: %d document(s) valid", args[0], len(scenarios))
			return nil
		},
	}
}

func readDocument(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		return data, apperrors.Wrap(err, "reading stdin")
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDataNotFound, name)
		}
		return nil, apperrors.Wrapf(err, "reading %s", name)
	}
	return data, nil
}

// decodeScenarios accepts one document or an array of documents.
func decodeScenarios(data []byte) ([]*models.ParsedScenario, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", apperrors.ErrInvalidInput)
	}

	if trimmed[0] == '[' {
		var list []*models.ParsedScenario
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, decodeError(err)
		}
		for i, s := range list {
			if s == nil {
				return nil, fmt.Errorf("%w: document %d is null", apperrors.ErrInvalidInput, i)
			}
		}
		return list, nil
	}

	var s models.ParsedScenario
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, decodeError(err)
	}
	return []*models.ParsedScenario{&s}, nil
}

func decodeError(err error) error {
	if apperrors.Is(err, apperrors.ErrInvalidValue) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
}
