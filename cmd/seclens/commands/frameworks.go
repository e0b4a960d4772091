package commands

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFrameworksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List registered compliance frameworks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Code\tName\tVersion\tRules\n")
			fmt.Fprintf(w, "----\t----\t-------\t-----\n")
			for _, fw := range a.Catalog.Frameworks() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", fw.Code, fw.Name, fw.Version, len(a.Catalog.Rules(fw.Code)))
			}
			w.Flush()

			fmt.Fprint(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}
}
