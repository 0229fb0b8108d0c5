package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/internal/logging"
	"github.com/OpenTraceLab/OpenTraceView/internal/ui"
	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the device property panel",
	Long: `Open a window listing the properties of the selected device. Properties are
edited in place; the import menu shows the options of each input format.

Examples:
  # Demo device and the profiles of the configured directory
  otv ui

  # Devices of one profile, with debug diagnostics in the log pane
  otv ui --profile bench.otp -v`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
	addDeviceFlags(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	if verbose {
		fmt.Fprintln(cmd.OutOrStdout(), "Launching OpenTraceView UI...")
	}

	state := ui.NewState()
	state.SetAppVersion(rootCmd.Version)
	state.SetStatus("Initializing UI")

	uiLogger := slog.New(ui.NewLogHandler(state, logging.ParseLevel(cfg.Logging.Level)))

	var devices []capture.Device
	if inputPath != "" {
		dev, err := inputDevice()
		if err != nil {
			return err
		}
		devices = append(devices, dev)
	} else {
		devs, err := profileDevices()
		if err != nil {
			return err
		}
		devices = devs
	}
	state.SetDevices(devices)
	state.SelectDevice(deviceIndex)
	uiLogger.Info("devices loaded", "count", len(devices))

	catalog, err := loadCatalog()
	if err != nil {
		uiLogger.Error("input format catalog unavailable", "error", err)
		catalog = nil
	}

	return ui.Run(state, ui.Options{
		Width:   cfg.UI.Width,
		Height:  cfg.UI.Height,
		Catalog: catalog,
		Logger:  uiLogger,
	})
}
