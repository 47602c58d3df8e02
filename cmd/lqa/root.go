package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramarlina/lqa-cli/pkg/client"
	"github.com/ramarlina/lqa-cli/pkg/config"
	"github.com/ramarlina/lqa-cli/pkg/observability"
	"github.com/ramarlina/lqa-cli/pkg/session"
)

var (
	// Global flags
	flagJSON   bool
	flagRaw    bool
	flagQuiet  bool
	flagNoANSI bool
	flagYes    bool

	logger = zap.NewNop()

	// Version metadata (filled by goreleaser)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "lqa",
	Short:         "Legal QA from the shell",
	Long:          "Ask legal questions and browse statutes, cases and concepts",
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFile, err := logFilePath(cfg.LogFile)
		if err != nil {
			return err
		}
		logger = observability.SetupLogger(observability.LogConfig{
			Level: cfg.LogLevel,
			File:  logFile,
		}).With(zap.String("cmd", cmd.CommandPath()))

		// Session is optional
		session.Load()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&flagRaw, "raw", false, "Minimal human output (no decoration)")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&flagNoANSI, "no-ansi", false, "Disable ANSI formatting")
	rootCmd.PersistentFlags().BoolVar(&flagYes, "yes", false, "Skip confirmation prompts")
}

// logFilePath resolves the log.file setting. Empty means the default file in
// the config directory and "off" disables logging.
func logFilePath(setting string) (string, error) {
	switch setting {
	case "off":
		return "", nil
	case "":
		dir, err := config.Dir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "lqa.log"), nil
	default:
		return setting, nil
	}
}

// Execute runs the root command and reports any error the API client has
// not already shown to the user.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(err)
	}
	return err
}

func reportError(err error) {
	switch client.KindOf(err) {
	case client.KindBuild, client.KindApplication, client.KindTransport:
		// already surfaced by the notifier
	default:
		getOutputPrinter().Error(err)
	}
	logger.Sync()
}
