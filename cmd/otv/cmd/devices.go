package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/formats"
	"github.com/OpenTraceLab/OpenTraceView/pkg/profile"
)

var (
	profilePath string
	deviceIndex int
	inputPath   string
	inputFormat string
	skipUSB     bool
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List capture devices",
	Long: `Scan the host for known USB logic analyzers and oscilloscopes and list the
devices declared in profile files. Profiled devices are simulated and can be
configured with the props and set commands.`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().StringVar(&profilePath, "profile", "", "device profile file (.otp)")
	devicesCmd.Flags().BoolVar(&skipUSB, "no-usb", false, "do not scan USB")
}

// addDeviceFlags registers the flags selecting the device to bind.
func addDeviceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&profilePath, "profile", "", "device profile file (.otp), default is the demo device")
	cmd.Flags().IntVarP(&deviceIndex, "device", "d", 0, "index of the device within the profile")
	cmd.Flags().StringVar(&inputPath, "input", "", "bind a capture file instead of a profiled device")
	cmd.Flags().StringVar(&inputFormat, "format", "", "input format of --input (default: by file extension)")
}

func runDevices(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !skipUSB {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		infos, err := capture.DiscoverDevices(ctx)
		if err != nil {
			return fmt.Errorf("discover devices: %w", err)
		}
		fmt.Fprintln(out, "USB devices:")
		if len(infos) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		names := capture.DisplayNames(infos)
		for i, info := range infos {
			fmt.Fprintf(out, "  - %s [%s]\n", names[i], info.Driver)
		}
	}

	devs, err := profileDevices()
	if err != nil {
		return err
	}
	infos := make([]capture.DeviceInfo, len(devs))
	for i, d := range devs {
		infos[i] = d.Info()
	}
	names := capture.DisplayNames(infos)
	fmt.Fprintln(out, "Profile devices:")
	for i, info := range infos {
		fmt.Fprintf(out, "  %d: %s", i, names[i])
		if verbose {
			fmt.Fprintf(out, " (%s)", info.FullName())
		}
		fmt.Fprintln(out)
	}
	return nil
}

// profileDevices returns the devices of --profile, or the demo device
// followed by the devices of the configured profile directory.
func profileDevices() ([]capture.Device, error) {
	var sims []*capture.SimDevice
	if profilePath != "" {
		devs, err := profile.Load(profilePath)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		sims = devs
	} else {
		demo, err := profile.Demo()
		if err != nil {
			return nil, err
		}
		sims = append(sims, demo)

		paths, err := cfg.ProfilePaths()
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			devs, err := profile.Load(p)
			if err != nil {
				logger.Warn("skipping profile", "path", p, "error", err)
				continue
			}
			sims = append(sims, devs...)
		}
	}

	devs := make([]capture.Device, len(sims))
	for i, d := range sims {
		devs[i] = d
	}
	return devs, nil
}

// selectDevice returns the device chosen by the device flags, opened.
func selectDevice() (capture.Device, error) {
	if inputPath != "" {
		dev, err := inputDevice()
		if err != nil {
			return nil, err
		}
		return dev, dev.Open()
	}

	devs, err := profileDevices()
	if err != nil {
		return nil, err
	}
	if deviceIndex < 0 || deviceIndex >= len(devs) {
		return nil, fmt.Errorf("device %d out of range, %d device(s) available", deviceIndex, len(devs))
	}
	dev := devs[deviceIndex]
	return dev, dev.Open()
}

// inputDevice builds the capture file device of --input with the default
// options of its format.
func inputDevice() (*capture.InputFile, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	var f *formats.Format
	if inputFormat != "" {
		if f, err = catalog.Find(inputFormat); err != nil {
			return nil, err
		}
	} else {
		matches := catalog.ForFile(inputPath)
		if len(matches) == 0 {
			return nil, fmt.Errorf("no input format for %s, use --format", inputPath)
		}
		f = matches[0]
	}

	options := make(map[string]capture.Value, len(f.Options))
	for _, opt := range f.Options {
		options[opt.ID] = opt.Default
	}
	return capture.NewInputFile(inputPath, f.ID, options), nil
}
