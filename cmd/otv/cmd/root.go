package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/internal/config"
	"github.com/OpenTraceLab/OpenTraceView/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "otv",
	Short: "OpenTraceView device configuration tool",
	Long: `Inspect and change the configuration of capture devices through the same
property descriptors the viewer's device panel uses.

Examples:
  otv devices                                  # List USB capture devices
  otv props --profile bench.otp                # Show the properties of a profiled device
  otv set limit_frames=10 "Coupling=AC"        # Set properties of the demo device
  otv formats options csv                      # Show the options of the CSV importer`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/opentraceview/config.yaml)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	var err error
	if path == "" {
		cfg = config.Default()
	} else if cfg, err = config.Load(path); err != nil {
		return err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	logger = logging.New(cfg.Logging)
	slog.SetDefault(logger)
	return nil
}
