package commands

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	var framework string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered compliance rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}

			var codes []string
			if framework != "" {
				codes = append(codes, framework)
			}

			var buf bytes.Buffer
			w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Code\tFramework\tSeverity\tCategory\tTitle\n")
			fmt.Fprintf(w, "----\t---------\t--------\t--------\t-----\n")
			for _, rule := range a.Catalog.Rules(codes...) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rule.Code, rule.Framework, rule.Severity, rule.Category, rule.Title)
			}
			w.Flush()

			fmt.Fprint(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "", "only list rules of this framework code")
	return cmd
}
