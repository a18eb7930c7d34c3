package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/docsmith/internal/config"
	"github.com/example/docsmith/internal/diagram"
)

type diagramOptions struct {
	File   string
	Output string
	Format string
}

func newDiagramCommand(a *app) *cobra.Command {
	var opts diagramOptions

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Write a workflow diagram as Graphviz DOT, optionally rendered",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDiagram(a, opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "YAML graph definition (default: built-in pipeline)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Base output path without extension (default \"workflow\")")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Image format rendered via dot, e.g. svg or png (default: DOT only)")

	return cmd
}

func runDiagram(a *app, opts diagramOptions, runner diagram.Runner) error {
	file := config.Merge(opts.File, a.cfg.Diagram.File)
	output := config.Merge(opts.Output, config.Merge(a.cfg.Diagram.Output, diagram.DefaultBase))
	format := config.Merge(opts.Format, a.cfg.Diagram.Format)

	g := diagram.DefaultPipeline()
	if file != "" {
		loaded, err := diagram.Load(file)
		if err != nil {
			return err
		}
		g = loaded
	}

	written, err := diagram.NewRenderer(runner).Render(g, output, format)
	if err != nil {
		return err
	}
	fmt.Printf("Diagram written: %s\n", strings.Join(written, ", "))
	return nil
}
