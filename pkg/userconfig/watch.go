package userconfig

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports the settings every time the config file at path is written.
// The parent directory is watched because atomic saves replace the file.
// The returned channel is closed when ctx is done.
func Watch(ctx context.Context, path string) (<-chan Settings, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	out := make(chan Settings, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				cfg, err := loadFrom(path)
				if err != nil {
					slog.Debug("Ignoring unreadable config change", "path", path, "error", err)
					continue
				}
				select {
				case out <- cfg.GetSettings():
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Debug("Config watcher error", "error", err)
			}
		}
	}()

	return out, nil
}
