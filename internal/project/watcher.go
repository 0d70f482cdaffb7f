package project

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/formlab/formlab/internal/eventbus"
)

// Watcher publishes project.changed events when project files under the local
// store change out-of-band, e.g. hand-edited or synced by another process. It
// only runs for local storage; S3 offers no change notification channel here.
type Watcher struct {
	dir string
	bus *eventbus.Bus
}

// NewWatcher watches dir, the directory holding the per-project JSON files.
func NewWatcher(dir string, bus *eventbus.Bus) *Watcher {
	return &Watcher{dir: dir, bus: bus}
}

// Start blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create watch dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	slog.Debug("watching project dir", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			w.bus.PublishNew(eventbus.TypeProjectChanged, strings.TrimSuffix(name, ".json"))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("project watcher error", "error", err)
		}
	}
}
