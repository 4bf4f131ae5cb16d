package cli

import (
	"fmt"

	"github.com/dianpeng/byoo/plan"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type explainOptions struct {
	dot     bool
	noColor bool
}

func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &explainOptions{}

	cmd := &cobra.Command{
		Use:           "explain <file>",
		Short:         "Render a plan file as a tree or a graphviz graph",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ir, err := loadPlan(rootOpts, args[0])
			if err != nil {
				return err
			}
			if opts.dot {
				fmt.Fprint(cmd.OutOrStdout(), plan.Dot(ir))
				return nil
			}
			return plan.Print(ir, cmd.OutOrStdout(), !opts.noColor && !color.NoColor)
		},
	}

	cmd.Flags().BoolVar(&opts.dot, "dot", false, "output graphviz dot")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}
