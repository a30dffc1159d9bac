package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/inodb/dnatraits/internal/cache"
	"github.com/inodb/dnatraits/internal/genome"
	"github.com/inodb/dnatraits/internal/parser"
)

const configName = ".dnatraits.yaml"

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func setDefaults(v *viper.Viper) {
	home := homeDir()
	v.SetDefault("parse.capacity", genome.DefaultCapacity)
	v.SetDefault("parse.duplicates", parser.LastWins.String())
	v.SetDefault("parse.mitochondrial", parser.MitochondrialSkip.String())
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", filepath.Join(home, ".dnatraits", "cache"))
	v.SetDefault("export.database", filepath.Join(home, ".dnatraits", "genomes.duckdb"))
	v.SetDefault("log.level", "warn")
}

// initConfig reads the config file and environment. A missing config file
// is not an error.
func (a *app) initConfig() error {
	v := a.v
	setDefaults(v)

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigFile(filepath.Join(homeDir(), configName))
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix("DNATRAITS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// initLogger builds the stderr logger. --verbose wins over log.level.
func (a *app) initLogger(w io.Writer) error {
	level := zapcore.WarnLevel
	if s := a.v.GetString("log.level"); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("invalid log.level %q: %w", s, err)
		}
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	a.logger = zap.New(core)
	return nil
}

// parseOptions builds parser options from the parse.* settings.
func (a *app) parseOptions() (parser.Options, error) {
	opts := parser.DefaultOptions()
	opts.Capacity = a.v.GetInt("parse.capacity")
	opts.Logger = a.logger

	var err error
	if opts.Duplicates, err = parser.ParseDuplicatePolicy(a.v.GetString("parse.duplicates")); err != nil {
		return opts, fmt.Errorf("parse.duplicates: %w", err)
	}
	if opts.Mitochondrial, err = parser.ParseMitochondrialPolicy(a.v.GetString("parse.mitochondrial")); err != nil {
		return opts, fmt.Errorf("parse.mitochondrial: %w", err)
	}
	return opts, nil
}

// genomeCache returns the configured cache, or nil when caching is off.
func (a *app) genomeCache() *cache.GenomeCache {
	if a.noCache || !a.v.GetBool("cache.enabled") {
		return nil
	}
	c := cache.New(a.v.GetString("cache.dir"))
	c.SetLogger(a.logger)
	return c
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dnatraits configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.dnatraits.yaml.",
		Example: `  dnatraits config                             # show all config
  dnatraits config set parse.mitochondrial keep  # store MT rows
  dnatraits config get cache.dir                 # get a value`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))

	return cmd
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) runConfigShow(w io.Writer) error {
	settings := a.v.AllSettings()
	if a.jsonOut {
		return printJSON(w, settings)
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

func (a *app) runConfigSet(w io.Writer, key, value string) error {
	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		a.v.Set(key, true)
	case "false", "no", "off":
		a.v.Set(key, false)
	default:
		a.v.Set(key, value)
	}

	// Reject values the commands would fail on later.
	if _, err := a.parseOptions(); err != nil {
		return err
	}

	cfgFile := a.v.ConfigFileUsed()
	if cfgFile == "" {
		cfgFile = filepath.Join(homeDir(), configName)
	}

	if err := a.v.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func (a *app) runConfigGet(w io.Writer, key string) error {
	val := a.v.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, val)
	return nil
}
