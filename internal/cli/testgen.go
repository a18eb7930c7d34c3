package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/docsmith/internal/config"
	"github.com/example/docsmith/internal/testgen"
)

type testgenOptions struct {
	Dir   string
	Force bool
}

func newTestgenCommand(a *app) *cobra.Command {
	var opts testgenOptions

	cmd := &cobra.Command{
		Use:   "testgen",
		Short: "Generate unit-test stubs for a package's untested exports",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTestgen(a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", "", "Package directory to scan (default \".\")")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing stub files")

	return cmd
}

func runTestgen(a *app, opts testgenOptions) error {
	dir := config.Merge(opts.Dir, config.Merge(a.cfg.Source, "."))

	gen := testgen.New(a.logger)
	targets, err := gen.Scan(dir)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Println("No untested exported functions found")
		return nil
	}

	written, err := gen.Generate(targets, opts.Force)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d test stubs in %d files\n", len(targets), len(written))
	return nil
}
