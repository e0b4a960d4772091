package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/seclens/seclens/internal/output"
	"github.com/seclens/seclens/pkg/types"
)

func newEvaluateCommand() *cobra.Command {
	var (
		frameworks []string
		categories []string
		severities []string
		summary    bool
		noSave     bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <snapshot-file>",
		Short: "Evaluate a configuration snapshot against the rule catalog",
		Long: `Evaluate runs the registered compliance rules against a snapshot
JSON document and prints the scored result. The result is stored under
its session id unless --no-save is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}

			snapshot, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			criteria := types.Criteria{
				Frameworks: frameworks,
				Categories: categories,
				Severities: severities,
			}

			result, err := a.Engine.Evaluate(cmd.Context(), snapshot, criteria)
			if err != nil {
				return err
			}

			if !noSave {
				if err := a.Store.SaveResult(cmd.Context(), result); err != nil {
					return fmt.Errorf("failed to store result: %w", err)
				}
			}

			format, err := output.ParseFormat(a.Config.Output.Format)
			if err != nil {
				return err
			}

			var rendered []byte
			if summary {
				rendered, err = a.Renderer.FormatSummary(a.Enhancer.Enhance(result), format)
			} else {
				rendered, err = a.Renderer.FormatResult(result, format)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&frameworks, "framework", nil, "only run rules of these framework codes")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only run rules in these categories")
	cmd.Flags().StringSliceVar(&severities, "severity", nil, "only run rules of these severities")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the executive summary instead of the full result")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the result")

	return cmd
}

// loadSnapshot reads a snapshot JSON document. A bare configuration
// object without the snapshot envelope is accepted and wrapped, so
// agent output can be piped in directly.
func loadSnapshot(path string) (*types.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot types.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}

	if snapshot.Sections == nil {
		var sections map[string]interface{}
		if err := json.Unmarshal(data, &sections); err != nil {
			return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
		}
		snapshot = types.Snapshot{Sections: sections}
	}
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.CollectedAt.IsZero() {
		snapshot.CollectedAt = time.Now().UTC()
	}
	return &snapshot, nil
}
