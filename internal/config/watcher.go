package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a file with load and hands the result to apply each time
// the file settles after a change. The parent directory is watched so files
// replaced by rename are still seen.
type Watcher[T any] struct {
	path     string
	load     func(path string) (T, error)
	apply    func(T)
	debounce time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher. A debounce <= 0 uses DefaultDebounce.
func NewWatcher[T any](path string, load func(string) (T, error), apply func(T), debounce time.Duration, logger *slog.Logger) *Watcher[T] {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher[T]{
		path:     filepath.Clean(path),
		load:     load,
		apply:    apply,
		debounce: debounce,
		logger:   logger,
	}
}

// Run watches until ctx is done. It returns an error only when the watch
// cannot be set up.
func (w *Watcher[T]) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info("Watching config file", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.schedule()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Config watch error", "error", err)
		}
	}
}

func (w *Watcher[T]) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher[T]) reload() {
	cfg, err := w.load(w.path)
	if err != nil {
		w.logger.Warn("Config reload failed, keeping previous settings", "path", w.path, "error", err)
		return
	}
	w.logger.Info("Config reloaded", "path", w.path)
	w.apply(cfg)
}
