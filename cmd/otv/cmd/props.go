package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/pkg/binding"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

var propsJSON bool

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "List the configurable properties of a device",
	Long: `Bind a device and list its properties with their current value, kind,
range and choices. Keys without a property are reported in the debug log
(use -v).

Examples:
  otv props                                    # Demo device
  otv props --profile bench.otp --device 1     # Second device of a profile
  otv props --input capture.vcd --json         # Capture file device as JSON`,
	Args: cobra.NoArgs,
	RunE: runProps,
}

func init() {
	rootCmd.AddCommand(propsCmd)
	addDeviceFlags(propsCmd)
	propsCmd.Flags().BoolVar(&propsJSON, "json", false, "print JSON")
}

// propertyInfo is the printed form of a property.
type propertyInfo struct {
	Name    string   `json:"name"`
	Key     string   `json:"key,omitempty"`
	Kind    string   `json:"kind"`
	Value   string   `json:"value,omitempty"`
	Error   string   `json:"error,omitempty"`
	Range   string   `json:"range,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

func describe(p prop.Property, key string) propertyInfo {
	info := propertyInfo{Name: p.Name(), Key: key, Kind: string(p.Kind())}
	if label, err := p.Label(); err != nil {
		info.Error = err.Error()
	} else {
		info.Value = label
	}
	switch p := p.(type) {
	case *prop.Int:
		if rng, ok := p.Range(); ok {
			info.Range = rng.String()
		}
	case *prop.Enum:
		for _, v := range p.Values() {
			info.Choices = append(info.Choices, v.Label)
		}
	}
	return info
}

func runProps(cmd *cobra.Command, args []string) error {
	dev, err := selectDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	b := binding.NewDevice(dev, binding.WithLogger(logger))
	var infos []propertyInfo
	for _, p := range b.Properties() {
		key := ""
		if k, ok := b.Key(p); ok {
			key = k.Name()
		}
		infos = append(infos, describe(p, key))
	}

	out := cmd.OutOrStdout()
	if propsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Device     string         `json:"device"`
			Properties []propertyInfo `json:"properties"`
		}{dev.Info().FullName(), infos})
	}

	fmt.Fprintf(out, "Device: %s\n", dev.Info().FullName())
	printProperties(out, infos)
	return nil
}

func printProperties(out io.Writer, infos []propertyInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(out, "No configurable properties.")
		return
	}
	for _, info := range infos {
		value := info.Value
		if info.Error != "" {
			value = "<" + info.Error + ">"
		}
		fmt.Fprintf(out, "  %-32s %-7s %s", info.Name, info.Kind, value)
		if info.Key != "" && verbose {
			fmt.Fprintf(out, "  (%s)", info.Key)
		}
		fmt.Fprintln(out)
		if info.Range != "" {
			fmt.Fprintf(out, "  %-32s %-7s range %s\n", "", "", info.Range)
		}
		if len(info.Choices) > 0 {
			fmt.Fprintf(out, "  %-32s %-7s choices %q\n", "", "", info.Choices)
		}
	}
}
