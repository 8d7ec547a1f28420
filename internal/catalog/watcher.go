package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a Source whenever its catalog file changes on disk.
type Watcher struct {
	Path     string
	Source   *Source
	Debounce time.Duration
	Logger   *slog.Logger
	// OnReload, if set, is called after every reload attempt.
	OnReload func(err error)
}

// Watch blocks until ctx is cancelled. The file's directory is watched so
// editors that replace the file via rename are still picked up.
func (w *Watcher) Watch(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	path, err := filepath.Abs(os.ExpandEnv(w.Path))
	if err != nil {
		return fmt.Errorf("resolving catalog path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	logger.Info("catalog watcher started", "path", path, "debounce_ms", debounce.Milliseconds())

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	reload := func() {
		err := w.Source.Reload()
		if err != nil {
			logger.Error("catalog reload failed", "path", path, "error", err)
		} else {
			info := w.Source.Info()
			logger.Info("catalog reloaded", "path", path, "version", info.Version, "models", info.Models)
		}
		if w.OnReload != nil {
			w.OnReload(err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("catalog watcher stopped")
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("catalog file event", "op", ev.Op.String())

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, reload)
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("catalog watcher error", "error", err)
		}
	}
}
