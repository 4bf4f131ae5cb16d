package cli

import (
	"fmt"
	"strings"

	"github.com/dianpeng/byoo/plan"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type readerOptions struct {
	relations []string
	cols      []int
}

func NewReaderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &readerOptions{}

	cmd := &cobra.Command{
		Use:   "reader <relation>",
		Short: "Print the plan reading columns of a relation",
		Long: `Register the relations given with --relation name=file and print the
reader plan of one of them. A .csv file is read and projected, a .byoo file
gets one columnar reader per column.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rootOpts.LoadCatalog()
			if err != nil {
				return err
			}

			db := plan.NewDatabase(plan.NewBuilder(c))
			for _, r := range opts.relations {
				name, file, ok := strings.Cut(r, "=")
				if !ok || name == "" || file == "" {
					return errors.Errorf("invalid --relation %q, expect name=file", r)
				}
				if err := db.AddRelation(name, file); err != nil {
					return err
				}
			}

			n, err := db.ReaderFor(args[0], opts.cols)
			if err != nil {
				return err
			}
			ir, err := n.Serialize()
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

	cmd.Flags().StringArrayVar(&opts.relations, "relation", nil, "relation as name=file, repeatable")
	cmd.Flags().IntSliceVar(&opts.cols, "cols", nil, "columns to read, as 0,1,2")
	return cmd
}
