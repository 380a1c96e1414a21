package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"empireos/internal/config"
	"empireos/internal/ui"
)

const Version = "0.1.0"

// options is the state shared by every subcommand of one invocation.
type options struct {
	verbose     bool
	catalogPath string
	logFile     string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "empire",
		Short:         "Empire OS: an Etsy course, AI lab and shop planner in your terminal",
		Long:          "Empire OS walks through a seven-module Etsy course, tracks progress as XP, drafts listings with Gemini and models revenue and profit.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logger, err := opts.buildLogger(cmd)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Course catalog YAML (default: built-in course)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")

	cmd.AddCommand(
		newCourseCmd(opts),
		newConceptCmd(opts),
		newStatusCmd(opts),
		newBoardCmd(opts),
		newSimulateCmd(),
		newProfitCmd(),
		newGenerateCmd(opts),
		newDashCmd(opts),
	)
	return cmd
}

// buildLogger returns a production zap logger. The dashboard owns the
// terminal, so it only logs when --log-file is set.
func (o *options) buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if cmd.Name() == "dash" && o.logFile == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	if o.verbose || o.cfg.Debug() {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if o.logFile != "" {
		cfg.OutputPaths = []string{o.logFile}
		cfg.ErrorOutputPaths = []string{o.logFile}
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("empire"), nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		stop()
		os.Exit(1)
	}
}
