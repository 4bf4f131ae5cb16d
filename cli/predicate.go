package cli

import (
	"fmt"
	"strings"

	"github.com/dianpeng/byoo/predicate"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func joinKindName(k int) string {
	switch k {
	case predicate.JoinEqui:
		return "equijoin"
	case predicate.JoinTheta:
		return "join"
	default:
		return "none"
	}
}

func NewPredicateCommand(rootOpts *RootOptions) *cobra.Command {
	var join string

	cmd := &cobra.Command{
		Use:   "predicate <text>...",
		Short: "Compile predicates and print their IR",
		Long: `Compile each predicate and print its JSON form and the columns it needs.

With --join a,b every predicate is also classified against the relation
pair as none, join or equijoin.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredicate(rootOpts, cmd, args, join)
		},
	}

	cmd.Flags().StringVar(&join, "join", "", "relation pair to classify against, as a,b")
	return cmd
}

func runPredicate(opts *RootOptions, cmd *cobra.Command, args []string, join string) error {
	var relA, relB string
	if join != "" {
		pair := strings.Split(join, ",")
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return errors.Errorf("invalid --join %q, expect a,b", join)
		}
		relA, relB = strings.TrimSpace(pair[0]), strings.TrimSpace(pair[1])
	}

	cache := predicate.NewCache()
	list, err := cache.ParseAll(args)
	if err != nil {
		return err
	}
	level.Debug(opts.Logger()).Log("msg", "predicates compiled", "count", len(list), "distinct", cache.Len())

	out := cmd.OutOrStdout()
	for _, p := range list {
		data, err := p.ToJson()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", data)
		fmt.Fprintf(out, "columns: %s\n", strings.Join(p.RequiredColumnList(), " "))

		if join != "" {
			k, err := p.JoinKind(relA, relB)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "join(%s, %s): %s\n", relA, relB, joinKindName(k))
		}
	}
	return nil
}
