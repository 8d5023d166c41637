package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LocalWatcher reloads the local data file whenever it is written or replaced.
type LocalWatcher struct {
	path     string
	reload   func(context.Context) error
	logger   *zap.Logger
	debounce time.Duration
}

// NewLocalWatcher watches filePath and calls reload after changes settle.
func NewLocalWatcher(filePath string, reload func(context.Context) error, logger *zap.Logger) *LocalWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalWatcher{
		path:     filePath,
		reload:   reload,
		logger:   logger,
		debounce: 250 * time.Millisecond,
	}
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (w *LocalWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done. The parent directory is watched so editors
// that replace the file atomically are picked up too.
func (w *LocalWatcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.logger.Info("watching local data", zap.String("path", target))

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("local data changed", zap.String("op", event.Op.String()))
			settle = time.After(w.debounce)

		case <-settle:
			settle = nil
			if err := w.reload(ctx); err != nil {
				w.logger.Warn("reloading local data failed", zap.Error(err))
				continue
			}
			w.logger.Info("local data reloaded", zap.String("path", target))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}
