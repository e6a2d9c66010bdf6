package snapshot

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces bursts of filesystem events for the same file.
const debounceDelay = 200 * time.Millisecond

// Watcher syncs snapshot files dropped into a directory back into the
// store.
type Watcher struct {
	store  Store
	dir    string
	logger *slog.Logger

	// onImport, when set, is called after each successful import.
	onImport func(ImportResult)
}

// NewWatcher creates a watcher over dir.
func NewWatcher(s Store, dir string, logger *slog.Logger) *Watcher {
	return &Watcher{store: s, dir: dir, logger: logger}
}

// OnImport registers a callback invoked after each successful import.
func (w *Watcher) OnImport(fn func(ImportResult)) {
	w.onImport = fn
}

// Run watches the snapshot directory until the context is cancelled.
// Import failures are logged, not fatal: a half-written file will fire
// another event once complete.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching snapshot directory", "dir", w.dir)

	timers := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-fw.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}

			name := event.Name
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			timers[name] = time.AfterFunc(debounceDelay, func() {
				w.importFile(name)
			})

		case err := <-fw.Errors:
			w.logger.Error("snapshot watcher error", "error", err)
		}
	}
}

func (w *Watcher) importFile(path string) {
	res, err := ImportFile(w.store, path)
	if err != nil {
		w.logger.Error("snapshot import failed", "file", path, "error", err)
		return
	}
	w.logger.Info("snapshot imported", "file", path,
		"imported", res.Imported, "skipped", res.Skipped)
	if w.onImport != nil {
		w.onImport(res)
	}
}
