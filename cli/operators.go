package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewOperatorsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "operators",
		Short:         "List the operators of the catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rootOpts.LoadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range c.Names() {
				e, _ := c.Lookup(name)
				file := "-"
				switch {
				case e.InputFile:
					file = "input"
				case e.OutputFile:
					file = "output"
				}
				fmt.Fprintf(out, "%-20s children=%-5s file=%s\n", e.Name, e.ChildCount, file)
			}
			return nil
		},
	}
	return cmd
}
