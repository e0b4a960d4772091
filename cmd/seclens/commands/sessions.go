package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seclens/seclens/internal/output"
)

func newSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored evaluation sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}

			sessions, err := a.Store.ListResults(cmd.Context())
			if err != nil {
				return err
			}

			format, err := output.ParseFormat(a.Config.Output.Format)
			if err != nil {
				return err
			}
			rendered, err := a.Renderer.FormatSessionList(sessions, format)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(rendered))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a stored evaluation session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			if err := a.Store.DeleteResult(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted session %s\n", args[0])
			return nil
		},
	})

	return cmd
}
