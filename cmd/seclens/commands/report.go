package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seclens/seclens/internal/output"
)

func newReportCommand() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "report <session-id>",
		Short: "Render a stored evaluation result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.Store.LoadResult(cmd.Context(), args[0])
			if err != nil {
				return err
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

	cmd.Flags().BoolVar(&summary, "summary", false, "print the executive summary instead of the full result")
	return cmd
}
