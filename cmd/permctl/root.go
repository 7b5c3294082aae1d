package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	in      io.Reader
	out     io.Writer
	asJSON  bool
	verbose bool
	logger  *zap.Logger
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "permctl",
		Short:         "Inspect goAuthz permission sets, roles and claims",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.verbose {
				return nil
			}
			cfg := zap.NewDevelopmentConfig()
			cfg.OutputPaths = []string{"stderr"}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			a.logger = l.Named("permctl")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print JSON instead of text")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newExplainCmd(a),
		newParseCmd(a),
		newRolesCmd(a),
		newClaimsCmd(a),
	)
	return root
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
