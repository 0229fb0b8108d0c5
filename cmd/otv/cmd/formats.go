package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceView/pkg/formats"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

var (
	catalogPath string
	optionSets  []string
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List input formats",
	Long: `Print the import menu built from the input format catalog. The built-in
catalog is used unless --catalog or formats.catalog in the config file names an
s-expression catalog file.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

var formatOptionsCmd = &cobra.Command{
	Use:   "options <format>",
	Short: "Show the options of an input format",
	Long: `Bind the options of an input format the way the import dialog does and print
them. Use --set to change options and print the resulting option values.

Examples:
  otv formats options csv
  otv formats options csv --set single_format=hex --set header=true`,
	Args: cobra.ExactArgs(1),
	RunE: runFormatOptions,
}

var formatMatchCmd = &cobra.Command{
	Use:   "match <file>",
	Short: "List the input formats accepting a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormatMatch,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	formatsCmd.AddCommand(formatOptionsCmd)
	formatsCmd.AddCommand(formatMatchCmd)

	formatsCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "input format catalog file")
	formatOptionsCmd.Flags().StringArrayVar(&optionSets, "set", nil, "option=value to apply (repeatable)")
}

// loadCatalog returns the catalog named by --catalog, the config file, or the
// built-in one.
func loadCatalog() (*formats.Catalog, error) {
	path := catalogPath
	if path == "" && cfg != nil {
		path = cfg.Formats.Catalog
	}
	if path == "" {
		return formats.Default()
	}
	return formats.ParseFile(path)
}

func runFormats(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	menu := formats.NewImportMenu(catalog)
	for _, e := range menu.Entries() {
		if e.Separator {
			fmt.Fprintln(out, "  ----")
			continue
		}
		fmt.Fprintf(out, "  %-40s", e.Label)
		if e.Format != nil {
			fmt.Fprintf(out, " %-14s %d option(s)", e.Format.ID, len(e.Format.Options))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runFormatOptions(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	f, err := catalog.Find(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := formats.NewInputBinding(f)
	for _, set := range optionSets {
		if err := setOption(b.Properties(), b.OptionID, set); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Format: %s (%s)\n", f.Name, f.ID)
	if f.Description != "" {
		fmt.Fprintf(out, "  %s\n", f.Description)
	}
	var infos []propertyInfo
	for _, p := range b.Properties() {
		id, _ := b.OptionID(p)
		infos = append(infos, describe(p, id))
	}
	printProperties(out, infos)

	if len(optionSets) > 0 {
		fmt.Fprintln(out, "Selected options:")
		values := b.Options()
		for _, o := range f.Options {
			if v, ok := values[o.ID]; ok {
				fmt.Fprintf(out, "  %s=%v\n", o.ID, v)
			}
		}
	}
	return nil
}

// setOption applies one id=value assignment to the option properties.
func setOption(props []prop.Property, optionID func(prop.Property) (string, bool), set string) error {
	id, text, ok := cutAssignment(set)
	if !ok {
		return fmt.Errorf("%q: expected option=value", set)
	}
	for _, p := range props {
		if pid, _ := optionID(p); pid == id || p.Name() == id {
			if err := prop.SetFromText(p, text); err != nil {
				return fmt.Errorf("set %s: %w", id, err)
			}
			return nil
		}
	}
	return fmt.Errorf("no option %q", id)
}

func runFormatMatch(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	matches := catalog.ForFile(args[0])
	if len(matches) == 0 {
		return fmt.Errorf("no input format accepts %s", args[0])
	}
	out := cmd.OutOrStdout()
	for _, f := range matches {
		fmt.Fprintf(out, "  %-14s %s\n", f.ID, f.Name)
	}
	return nil
}
