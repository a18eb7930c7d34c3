// Package cli provides the docsmith command-line interface.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/example/docsmith/internal/config"
)

// app carries the shared state every subcommand needs.
type app struct {
	logger *zap.Logger
	cfg    *config.Config
}

// Execute creates and runs the root command.
func Execute() error {
	a := &app{}
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:          "docsmith",
		Short:        "Documentation automation toolkit",
		Long:         "docsmith generates source introspection reports, OpenAPI specs, workflow diagrams, FAQ pages and unit-test stubs from a Go codebase.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a.logger = logger
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to .docsmith.yml config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newApidocCommand(a),
		newOpenAPICommand(a),
		newServeCommand(a),
		newDiagramCommand(a),
		newFAQCommand(a),
		newTestgenCommand(a),
		newWatchCommand(a),
	)

	return rootCmd.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
