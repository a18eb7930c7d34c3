package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/docsmith/internal/config"
	"github.com/example/docsmith/internal/introspect"
)

type apidocOptions struct {
	Source string
	Output string
}

func newApidocCommand(a *app) *cobra.Command {
	var opts apidocOptions

	cmd := &cobra.Command{
		Use:   "apidoc",
		Short: "Introspect a Go source tree and write a JSON doc report",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApidoc(a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "Directory to introspect (default \".\")")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Directory for the report file (default \".\")")

	return cmd
}

func runApidoc(a *app, opts apidocOptions) error {
	source := config.Merge(opts.Source, config.Merge(a.cfg.Source, "."))
	output := config.Merge(opts.Output, config.Merge(a.cfg.Output, "."))

	path, err := generateReport(a, source, output)
	if err != nil {
		return err
	}
	fmt.Printf("Doc report generated: %s\n", path)
	return nil
}

// generateReport extracts the report and writes it to the output directory.
// Shared with the watch command.
func generateReport(a *app, source, output string) (string, error) {
	extractor := introspect.NewExtractor(a.logger)
	if err := extractor.ParseDirectory(source); err != nil {
		return "", err
	}

	report := extractor.Extract(source)
	path, err := report.Write(output)
	if err != nil {
		return "", err
	}
	return path, nil
}
