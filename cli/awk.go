package cli

import (
	"fmt"
	"os"

	"github.com/benhoyt/goawk/interp"
	"github.com/benhoyt/goawk/parser"
	"github.com/dianpeng/byoo/cg"
	"github.com/dianpeng/byoo/predicate"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type awkOptions struct {
	sep   string
	input string
}

func NewAwkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &awkOptions{}

	cmd := &cobra.Command{
		Use:   "awk <predicate>",
		Short: "Generate an awk filter from a single relation predicate",
		Long: `Generate an awk program printing the records matching the predicate.

With --input the program is run right away over the given csv file and the
matching records are printed instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAwk(rootOpts, opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.sep, "sep", cg.DefaultSeparator, "field separator of the input")
	cmd.Flags().StringVar(&opts.input, "input", "", "csv file to filter")
	return cmd
}

func runAwk(rootOpts *RootOptions, opts *awkOptions, cmd *cobra.Command, text string) error {
	p, err := predicate.Parse(text)
	if err != nil {
		return err
	}
	code, err := cg.GenFilter(p, &cg.Config{Separator: opts.sep})
	if err != nil {
		return err
	}

	if opts.input == "" {
		fmt.Fprint(cmd.OutOrStdout(), code)
		return nil
	}

	level.Debug(rootOpts.Logger()).Log("msg", "running filter", "input", opts.input, "program", code)

	prog, err := parser.ParseProgram([]byte(code), nil)
	if err != nil {
		return err
	}
	f, err := os.Open(opts.input)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()

	runner, err := interp.New(prog)
	if err != nil {
		return err
	}
	if _, err := runner.Execute(&interp.Config{
		Stdin:  f,
		Output: cmd.OutOrStdout(),
	}); err != nil {
		return errors.Wrap(err, "run filter")
	}
	return nil
}
