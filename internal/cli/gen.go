package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reoring/partial/internal/gen"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	Dir     string
	Types   string // comma-separated type names; empty means all tracked types
	Output  string // output file; empty writes to stdout
	Methods bool
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write descriptor tables for tracked types",
		Long: `Scan the package in --dir and write one partial.MustNewSchema table per
tracked type. With --methods the output also declares UnmarshalJSON and
MarshalJSON methods that delegate to codec/jsoncodec.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "package directory")
	cmd.Flags().StringVar(&opts.Types, "type", "", "comma-separated type names (default: all tracked types)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.Methods, "methods", false, "emit encoding/json delegation methods")

	return cmd
}

func runGen(cmd *cobra.Command, opts *GenOptions) error {
	log := opts.Logger().With("cmd", "gen", "dir", opts.Dir)

	pkg, err := gen.Scan(opts.Dir, splitCSV(opts.Types))
	if err != nil {
		return err
	}
	if len(pkg.Types) == 0 {
		return fmt.Errorf("no tracked types in %s", opts.Dir)
	}
	for _, td := range pkg.Types {
		log.Debug("tracked type", "type", td.Name, "fields", len(td.Fields))
	}

	code, err := gen.Render(pkg, gen.Options{Methods: opts.Methods})
	if err != nil {
		return err
	}
	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(code)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(opts.Output, code, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info("wrote generated file", "path", opts.Output, "types", len(pkg.Types))
	return nil
}
