package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/pkg/binding"
	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

var setCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Set device properties",
	Long: `Set properties of a device through its property descriptors. A property is
named by its configuration key (limit_frames) or its display name (Frame limit).
Integer values outside the property range are rejected.

Examples:
  otv set limit_frames=100
  otv set "Frame limit=No Limit" coupling=AC`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	addDeviceFlags(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	dev, err := selectDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	out := cmd.OutOrStdout()
	b := binding.NewDevice(dev, binding.WithLogger(logger))
	notifications := 0
	b.OnChanged(func() { notifications++ })

	for _, arg := range args {
		name, text, ok := cutAssignment(arg)
		if !ok {
			return fmt.Errorf("%q: expected key=value", arg)
		}
		p, err := lookupProperty(b, name)
		if err != nil {
			return err
		}

		before := notifications
		if err := prop.SetFromText(p, text); err != nil {
			return fmt.Errorf("set %s: %w", p.Name(), err)
		}
		label, _ := p.Label()
		fmt.Fprintf(out, "%s = %s (%d notification(s))\n", p.Name(), label, notifications-before)
	}

	if sim, ok := dev.(*capture.SimDevice); ok && verbose {
		for _, op := range sim.Sets() {
			fmt.Fprintf(out, "  device write: %s = %v\n", op.Name, op.Value)
		}
	}
	return nil
}

// lookupProperty resolves a configuration key name or a display name.
func lookupProperty(b *binding.Device, name string) (prop.Property, error) {
	if p, ok := b.PropertyByKey(name); ok {
		return p, nil
	}
	if p, ok := b.Property(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("no property %q", name)
}

// cutAssignment splits "name=value". The name is trimmed and must not be empty.
func cutAssignment(s string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	return name, value, ok && name != ""
}
