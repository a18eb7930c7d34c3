package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/docsmith/internal/config"
	"github.com/example/docsmith/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo item API with a live docs UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default \":8080\", or DOCSMITH_ADDR)")

	return cmd
}

func runServe(ctx context.Context, a *app, addr string) error {
	// A missing .env is fine; it only exists in dev setups.
	_ = godotenv.Load()

	title := config.Merge(a.cfg.Title, "Items API")
	version := config.Merge(a.cfg.Version, "1.0.0")
	addr = resolveAddr(a, addr)

	spec, err := server.BuildSpec(title, version)
	if err != nil {
		return err
	}

	return server.New(spec, a.logger).Run(ctx, addr)
}

// resolveAddr picks the listen address: flag, then config file, then the
// DOCSMITH_ADDR environment variable, then the built-in default.
func resolveAddr(a *app, flagAddr string) string {
	return config.Merge(flagAddr, config.Merge(a.cfg.Serve.Addr,
		config.Merge(os.Getenv("DOCSMITH_ADDR"), server.DefaultAddr)))
}
