package cli

import (
	"fmt"
	"os"

	"github.com/dianpeng/byoo/plan"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// loadPlan reads a plan file and checks it against the catalog
func loadPlan(opts *RootOptions, path string) (*plan.IR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read plan")
	}

	c, err := opts.LoadCatalog()
	if err != nil {
		return nil, err
	}

	n, err := plan.NewBuilder(c).Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "plan %s", path)
	}
	ir, err := n.Serialize()
	if err != nil {
		return nil, errors.Wrapf(err, "plan %s", path)
	}

	level.Debug(opts.Logger()).Log("msg", "plan loaded", "file", path, "root", ir.Op)
	return ir, nil
}

func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Check a plan file and print its canonical IR",
		Long: `Decode a JSON or YAML plan, rebuild it through the operator catalog
and print the canonical IR consumed by the executor.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ir, err := loadPlan(rootOpts, args[0])
			if err != nil {
				return err
			}
			data, err := ir.Indent()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return nil
		},
	}
	return cmd
}
