package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of changes to settle.
const DefaultDebounce = 200 * time.Millisecond

// ErrNotWatchable is returned by Watch for embedded content.
var ErrNotWatchable = errors.New("content: embedded content cannot be watched")

// Watch reloads the library whenever a file under its directory changes,
// until ctx is cancelled. onReload, if set, is called after each reload
// attempt with its result.
func (l *Library) Watch(ctx context.Context, debounce time.Duration, onReload func(error)) error {
	if l.dir == "" {
		return ErrNotWatchable
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, l.dir); err != nil {
		return err
	}

	reload := func() {
		err := l.Reload()
		if err != nil {
			slog.Error("content reload failed", "dir", l.dir, "error", err)
		} else {
			slog.Info("content reloaded", "dir", l.dir)
		}
		if onReload != nil {
			onReload(err)
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						slog.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			slog.Debug("content changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(debounce, reload)
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			slog.Error("fsnotify error", "error", err)
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}
