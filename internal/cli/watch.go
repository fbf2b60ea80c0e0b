package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logger"
	"github.com/idilsaglam/tada/internal/ui"
)

const watchDebounce = 100 * time.Millisecond

// fileWatcher reports writes to one file. It watches the parent directory
// because the json store replaces the file by rename on every save. Writes
// to the SQLite write-ahead log next to the file count as writes to it.
type fileWatcher struct {
	path    string
	wal     string
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

func newFileWatcher(path string, log *logger.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &fileWatcher{path: abs, wal: abs + "-wal", watcher: w, log: log}, nil
}

// run calls onChange (debounced) after each change to the file until ctx is
// done or the watcher fails.
func (w *fileWatcher) run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()
	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if name := filepath.Clean(ev.Name); name != w.path && name != w.wal {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				debounce = time.After(watchDebounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "path", w.path, "error", err)
		case <-debounce:
			debounce = nil
			onChange()
		}
	}
}

func (a *app) doWatch(ctx context.Context) int {
	if a.cfg.Storage != config.StorageJSON && a.cfg.Storage != config.StorageSQLite {
		ui.Fail("watch: needs a file backed storage (json or sqlite), have " + a.cfg.Storage)
		return 2
	}
	w, err := newFileWatcher(a.cfg.Path, a.log)
	if err != nil {
		ui.Fail("watch: " + err.Error())
		return 1
	}
	render := func() {
		fmt.Fprintln(ui.Out)
		a.doList(ctx)
	}
	render()
	if err := w.run(ctx, render); err != nil {
		ui.Fail("watch: " + err.Error())
		return 1
	}
	return 0
}
