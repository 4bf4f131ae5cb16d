package cli

import (
	"github.com/dianpeng/byoo/catalog"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

// RootOptions holds the flags shared by every command
type RootOptions struct {
	Catalog string
	Verbose bool

	logger log.Logger
}

// Logger returns the command logger, commands built outside of the root
// command get a silent one.
func (self *RootOptions) Logger() log.Logger {
	if self.logger == nil {
		return log.NewNopLogger()
	}
	return self.logger
}

func (self *RootOptions) setupLogger(cmd *cobra.Command) {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	if self.Verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	self.logger = log.With(logger, "cmd", cmd.Name())
}

// LoadCatalog returns the built-in operator catalog unless a catalog file is
// given
func (self *RootOptions) LoadCatalog() (*catalog.Catalog, error) {
	if self.Catalog == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(self.Catalog)
	if err != nil {
		return nil, err
	}
	level.Debug(self.Logger()).Log("msg", "catalog loaded", "file", self.Catalog, "operators", c.Len())
	return c, nil
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "byoo",
		Short:         "byoo query plan frontend",
		Long:          "Build, check and render byoo query plans and predicates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.setupLogger(cmd)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "operator catalog file (json|yaml), default built-in")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewPredicateCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewAwkCommand(opts))
	cmd.AddCommand(NewOperatorsCommand(opts))
	cmd.AddCommand(NewReaderCommand(opts))

	return cmd
}
