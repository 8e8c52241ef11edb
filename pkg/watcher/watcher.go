// Package watcher reloads displacement data when the CSV files on disk
// change, so a long-running viewer picks up re-exported measurement series
// without a restart.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DataWatcher watches a displacement data directory and triggers a single
// debounced callback when any CSV file in it is written or created.
// Measurement exports rewrite all nine marker files in quick succession, so
// the debounce collapses the burst into one reload.
type DataWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu       sync.Mutex
	onChange func()
	timer    *time.Timer
}

// NewDataWatcher creates a watcher for the given directory. The callback
// runs on the watcher goroutine after the debounce window closes.
func NewDataWatcher(dir string, debounce time.Duration, onChange func(), logger *slog.Logger) (*DataWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}
	if err := fsWatcher.Add(absDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absDir, err)
	}

	return &DataWatcher{
		watcher:  fsWatcher,
		logger:   logger,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Start begins watching for CSV changes
func (w *DataWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
					continue
				}
				w.logger.Debug("displacement file changed", "file", filepath.Base(event.Name))
				w.scheduleReload()

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watcher error", "err", err)
			}
		}
	}()
}

// scheduleReload restarts the debounce timer
func (w *DataWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

// Close stops the watcher
func (w *DataWatcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
