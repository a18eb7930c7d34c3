package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTreeSkipsVendorAndHidden(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{
		filepath.Join("pkg", "sub"),
		"vendor",
		"testdata",
		".git",
		"_build",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	require.NoError(t, watchTree(watcher, root))

	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "pkg"),
		filepath.Join(root, "pkg", "sub"),
	}, watcher.WatchList())
}

func TestWatchTreeMissingRoot(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	require.Error(t, watchTree(watcher, filepath.Join(t.TempDir(), "nope")))
}

func TestRunWatchRegeneratesOnChange(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	file := filepath.Join(src, "m.go")
	require.NoError(t, os.WriteFile(file, []byte("package m\n\nfunc Greet() {}\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, testApp(), apidocOptions{Source: src, Output: out})
	}()

	require.Eventually(t, func() bool {
		return anyReportContains(out, "Greet")
	}, 5*time.Second, 25*time.Millisecond, "initial report never appeared")

	// Rewrite on each poll in case the first write lands before the watch
	// is registered. The poll interval stays above the debounce window so
	// the rewrites cannot keep pushing the regeneration out.
	updated := []byte("package m\n\nfunc Greet() {}\n\nfunc Extra() {}\n")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, updated, 0o644)
		return anyReportContains(out, "Extra")
	}, 15*time.Second, time.Second, "report was not regenerated after a change")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after context cancel")
	}
}

func TestRunWatchMissingSource(t *testing.T) {
	err := runWatch(context.Background(), testApp(), apidocOptions{
		Source: filepath.Join(t.TempDir(), "nope"),
		Output: t.TempDir(),
	})
	require.Error(t, err)
}

func anyReportContains(dir, needle string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if strings.Contains(string(data), needle) {
			return true
		}
	}
	return false
}
