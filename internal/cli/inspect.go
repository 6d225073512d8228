package cli

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/partial/internal/gen"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Dir   string
	Types string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the tracked types found in a package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := gen.Scan(opts.Dir, splitCSV(opts.Types))
			if err != nil {
				return err
			}
			opts.Logger().Debug("scanned package", "cmd", "inspect", "package", pkg.Name, "types", len(pkg.Types))
			return writeInspect(cmd.OutOrStdout(), opts.Format, pkg)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "package directory")
	cmd.Flags().StringVar(&opts.Types, "type", "", "comma-separated type names (default: all tracked types)")

	return cmd
}

func writeInspect(w io.Writer, format string, pkg *gen.Package) error {
	switch format {
	case "json":
		enc := gojson.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pkg)
	case "dump":
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		cfg.Fdump(w, pkg)
		return nil
	}
	fmt.Fprintf(w, "package %s (%s)\n", pkg.Name, pkg.Dir)
	for _, td := range pkg.Types {
		fmt.Fprintf(w, "%s\n", td.Name)
		for _, f := range td.Fields {
			if f.Wire != "" {
				fmt.Fprintf(w, "  %s %s wire=%s\n", f.Name, f.Type, f.Wire)
			} else {
				fmt.Fprintf(w, "  %s %s\n", f.Name, f.Type)
			}
		}
	}
	return nil
}
