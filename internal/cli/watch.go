package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/docsmith/internal/config"
)

// debounceWindow coalesces editor save bursts into a single regeneration.
const debounceWindow = 500 * time.Millisecond

func newWatchCommand(a *app) *cobra.Command {
	var opts apidocOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the doc report whenever the source tree changes",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "Directory to watch (default \".\")")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Directory for report files (default \".\")")

	return cmd
}

func runWatch(ctx context.Context, a *app, opts apidocOptions) error {
	source := config.Merge(opts.Source, config.Merge(a.cfg.Source, "."))
	output := config.Merge(opts.Output, config.Merge(a.cfg.Output, "."))

	// Initial run so the report exists before the first change.
	path, err := generateReport(a, source, output)
	if err != nil {
		return err
	}
	a.logger.Info("doc report generated", zap.String("path", path))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchTree(watcher, source); err != nil {
		return err
	}
	a.logger.Info("watching for changes", zap.String("source", source))

	// Receiving on a nil channel blocks forever, so the debounce case is
	// inert until the first relevant event arrives.
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = watchTree(watcher, event.Name)
				}
			}
			if !strings.HasSuffix(event.Name, ".go") || strings.HasSuffix(event.Name, "_test.go") {
				continue
			}
			a.logger.Debug("change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			// Replacing the channel restarts the window; an earlier
			// pending fire is simply never received.
			debounce = time.After(debounceWindow)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", zap.Error(err))

		case <-debounce:
			debounce = nil
			path, err := generateReport(a, source, output)
			if err != nil {
				a.logger.Error("regeneration failed", zap.Error(err))
				continue
			}
			a.logger.Info("doc report regenerated", zap.String("path", path))
		}
	}
}

// watchTree registers root and every non-hidden subdirectory with the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == "vendor" || name == "testdata" {
			return filepath.SkipDir
		}
		if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
