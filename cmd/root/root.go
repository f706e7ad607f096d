// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/emi-tracker/internal/config"
	"fjacquet/emi-tracker/internal/container"
	"fjacquet/emi-tracker/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to every command
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	OutputDir  string
	CSV        bool
	MinGapDays int
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "emi-tracker",
		Short: "Reconstruct credit-card EMI plans from statement text.",
		Long: `emi-tracker parses credit-card statement text into dated transactions and
reconstructs the EMI (equated monthly installment) plans hidden in them:
principal, interest and GST per installment, progress, effective interest
rate and a priority score for closing each plan early.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Bootstrap(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				_ = appContainer.Close()
			}
		},
	}

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	appContainer *container.Container
	initOnce     sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default searches ./config.yaml, ./.emi-tracker, $HOME/.emi-tracker)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		flags.StringVarP(&SharedFlags.OutputDir, "output-dir", "o", "", "Directory for emi_plans.json and CSV exports")
		flags.BoolVar(&SharedFlags.CSV, "csv", false, "Also write CSV exports")
		flags.IntVar(&SharedFlags.MinGapDays, "min-gap-days", config.DefaultMinGapDays, "Minimum days between installments of the same plan")
	})
}

// Bootstrap loads configuration, applies flag overrides and builds the
// application container.
func Bootstrap(cmd *cobra.Command) error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	Log.SetOutput(cmd.ErrOrStderr())

	c, err := container.NewContainer(cfg, container.WithLogger(logging.NewLogrusAdapterFromLogger(Log)))
	if err != nil {
		return err
	}
	appContainer = c
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if flags.Changed("output-dir") {
		cfg.Output.Directory = SharedFlags.OutputDir
	}
	if flags.Changed("csv") {
		cfg.Output.CSV = SharedFlags.CSV
	}
	if flags.Changed("min-gap-days") {
		cfg.EMI.MinGapDays = SharedFlags.MinGapDays
	}
}

// GetContainer returns the container built by Bootstrap, or nil before it ran.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogrusAdapter returns the shared logger behind the logging.Logger interface.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
