// Package cli implements the cascade command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-cascade/internal/config"
	"github.com/edp1096/toy-cascade/internal/ctxlog"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func Execute() error {
	return NewRoot().Execute()
}

func NewRoot() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "cascade",
		Short: "Two-port ladder network analyzer",
		Long: `cascade - frequency response of two-port ladder networks.

A description file lists the series and parallel R, G, L and C elements
of the ladder in a <CIRCUIT> block, the source, load and frequency sweep
in a <TERMS> block and the requested quantities in an <OUTPUT> block.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Configuration file (TOML, or YAML by extension). Defaults to ./"+config.FileName)
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Logging level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log output format: text or json")

	root.AddCommand(
		runCmd(flags),
		inspectCmd(flags),
		versionCmd(),
	)
	return root
}

// setup loads the configuration, applies the persistent flags on top and
// attaches a logger writing to stderr.
func (f *rootFlags) setup(cmd *cobra.Command) (context.Context, config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err == nil {
			cfg, err = config.LoadFromRoot(cwd)
		}
	}
	if err != nil {
		return nil, cfg, usageError("loading configuration: %v", err)
	}

	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, usageError("%v", err)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxlog.WithLogger(ctx, logger), cfg, nil
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return usageError("%s: expected %d to %d arguments, got %d\nUsage: %s", cmd.Name(), lo, hi, len(args), cmd.UseLine())
		}
		return nil
	}
}
