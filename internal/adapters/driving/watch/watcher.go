// Package watch triggers a sync when the quick-links configuration file
// changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sitesync/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher calls OnChange after the watched file is written, created
// or replaced. The parent directory is watched so atomic renames are seen.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)

	mu    sync.Mutex
	timer *time.Timer
}

// NewFileWatcher creates a watcher for path. debounce <= 0 uses DefaultDebounce.
func NewFileWatcher(path string, debounce time.Duration, onChange func(ctx context.Context)) (*FileWatcher, error) {
	if path == "" {
		return nil, errors.New("watch: empty path")
	}
	if onChange == nil {
		return nil, errors.New("watch: nil change handler")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	return &FileWatcher{path: abs, debounce: debounce, onChange: onChange}, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Run watches until the context is cancelled.
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: %s: %w", filepath.Dir(w.path), err)
	}
	logger.Info("watch: watching %s", w.path)

	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				logger.Debug("watch: %s %s", event.Op, event.Name)
				w.schedule(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// relevant reports whether event changes the watched file's content.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *FileWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() == nil {
			w.onChange(ctx)
		}
	})
}

func (w *FileWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
