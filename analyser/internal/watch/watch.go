package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Files monitors paths and calls onChange with the changed path each time one
// of them is written or re-created, including by a rename over the path.
// It runs until ctx is cancelled. Empty paths are ignored; every other path
// must exist when Files is called. onChange runs on the watcher goroutine.
func Files(ctx context.Context, paths []string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: new watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("watch: add %q: %w", p, err)
		}
		clean := filepath.Clean(p)
		dir := filepath.Dir(clean)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch: add %q: %w", dir, err)
			}
			dirs[dir] = true
		}
		watched[clean] = p
		slog.Info("watch: watching for changes", "path", p)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p, ok := watched[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			onChange(p)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", "err", err)
		}
	}
}
