package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries state shared by all subcommands for one invocation.
type app struct {
	cfgFile string
	verbose bool
	jsonOut bool
	noCache bool

	v      *viper.Viper
	logger *zap.Logger
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		logger: zap.NewNop(),
	}
}

func (a *app) close() {
	a.logger.Sync()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "dnatraits",
		Short: "Load and query 23andMe raw genotype files",
		Long: `dnatraits reads 23andMe-style raw genotype exports into an rsid index,
answers lookups and comparisons, and keeps a binary cache of parsed files so
later runs start quickly.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			return a.initLogger(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return &usageError{}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default ~/.dnatraits.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVar(&a.noCache, "no-cache", false, "Do not read or write the genome cache")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(
		newParseCmd(a),
		newSummaryCmd(a),
		newGetCmd(a),
		newCompareCmd(a),
		newSaveCmd(a),
		newLoadCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
	)
	return root
}

// usageArgs reports argument count problems as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
