package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sbca/indy-go/pkg/indy"
	"github.com/sbca/indy-go/pkg/indy/logging"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	LibraryPath string
	LogLevel    string
	LogFile     string
	LogFormat   string
}

type app struct {
	flags globalFlags

	// open loads and initializes libindy; tests replace it with a fake.
	open func(ctx context.Context, cfg indy.Config) (*indy.Library, error)

	logger *zap.Logger
}

func newApp() *app {
	return &app{open: indy.Initialize}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "indy-go",
		Short:         "Call libindy commands from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.flags.LibraryPath, "library", "", "path to libindy (default: platform library name, or INDY_LIBRARY_PATH)")
	root.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "trace|debug|info|warn|error (default: INDY_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&a.flags.LogFile, "log-file", "", "write logs to a rotated file instead of stderr")
	root.PersistentFlags().StringVar(&a.flags.LogFormat, "log-format", "console", "console|json")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newCallCmd(a))
	return root
}

// library builds the config from the environment and flags, sets up logging
// and initializes libindy.
func (a *app) library(cmd *cobra.Command) (*indy.Library, error) {
	cfg, err := indy.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if a.flags.LibraryPath != "" {
		cfg.LibraryPath = a.flags.LibraryPath
	}
	if a.flags.LogLevel != "" {
		cfg.LogLevel = a.flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := indy.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a.logger, err = newLogger(level, a.flags.LogFormat, a.flags.LogFile, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	cfg.Logger = logging.NewZap(a.logger)

	lib, err := a.open(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize libindy: %w", err)
	}
	return lib, nil
}
