package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/docsmith/internal/config"
	"github.com/example/docsmith/internal/server"
)

type openapiOptions struct {
	Output  string
	Title   string
	Version string
	Format  string
}

func newOpenAPICommand(a *app) *cobra.Command {
	var opts openapiOptions

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Generate the OpenAPI 3.1 specification for the item API",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOpenAPI(a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file path or '-' for stdout (default \"openapi.json\")")
	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "API title (default \"Items API\")")
	cmd.Flags().StringVar(&opts.Version, "api-version", "", "API version (default \"1.0.0\")")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: json or yaml (default \"json\")")

	return cmd
}

func runOpenAPI(a *app, opts openapiOptions) error {
	title := config.Merge(opts.Title, config.Merge(a.cfg.Title, "Items API"))
	version := config.Merge(opts.Version, config.Merge(a.cfg.Version, "1.0.0"))
	format := config.Merge(opts.Format, config.Merge(a.cfg.Format, "json"))
	output := config.Merge(opts.Output, config.Merge(a.cfg.Output, "openapi.json"))

	spec, err := server.BuildSpec(title, version)
	if err != nil {
		return fmt.Errorf("build spec: %w", err)
	}

	if output == "-" {
		return spec.Encode(os.Stdout, format)
	}

	outDir := filepath.Dir(output)
	if fi, err := os.Stat(outDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory %s does not exist", outDir)
		}
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("output path %s is not a directory", outDir)
	}

	f, err := os.Create(output) // #nosec G304
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := spec.Encode(f, format); err != nil {
		return err
	}

	fmt.Printf("OpenAPI spec generated: %s\n", output)
	fmt.Printf("Summary: %d paths, %d schemas\n", len(spec.Paths), len(spec.Components.Schemas))
	return nil
}
