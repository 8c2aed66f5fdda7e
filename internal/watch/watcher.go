package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Lister returns the repositories currently present under the base path.
type Lister interface {
	BasePath() string
	ListRepositories(ctx context.Context) ([]string, error)
}

// Watcher keeps track of the repositories appearing in and disappearing from
// the base path. The base path and its immediate subdirectories are watched, so
// a .git directory created inside an existing child is noticed too.
type Watcher struct {
	lister Lister

	discovered prometheus.Gauge
	logger     *zap.Logger

	mu    sync.RWMutex
	known []string

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewWatcher(lister Lister, reg prometheus.Registerer, logger *zap.Logger) *Watcher {
	return &Watcher{
		lister: lister,

		discovered: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: "repospect",
			Subsystem: "watch",
			Name:      "repositories_discovered",
			Help:      "Number of git repositories directly under the base path.",
		}),
		logger: logger,
	}
}

// Known returns the repositories seen by the last rescan.
func (w *Watcher) Known() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Clone(w.known)
}

// Start performs an initial scan and starts watching the base path.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if addErr := watcher.Add(w.lister.BasePath()); addErr != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.lister.BasePath(), addErr)
	}

	w.watcher = watcher

	entries, err := os.ReadDir(w.lister.BasePath())
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to read %s: %w", w.lister.BasePath(), err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.watchChild(filepath.Join(w.lister.BasePath(), entry.Name()))
		}
	}

	if scanErr := w.rescan(ctx); scanErr != nil {
		_ = watcher.Close()
		return scanErr
	}

	runCtx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(runCtx)

	w.logger.Info("watching base path", zap.String("path", w.lister.BasePath()))

	return nil
}

// Stop stops watching. Safe to call when Start failed or was never called.
func (w *Watcher) Stop() error {
	if w.cancel == nil {
		return nil
	}

	w.cancel()
	err := w.watcher.Close()
	<-w.done

	w.cancel = nil
	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.track(event)
			if err := w.rescan(ctx); err != nil {
				w.logger.Warn("failed to rescan base path", zap.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			return
		}
	}
}

// track keeps a watch on every immediate child of the base path. The child watch
// is added before the rescan, so a .git created right after the child is not lost.
func (w *Watcher) track(event fsnotify.Event) {
	if filepath.Dir(event.Name) != filepath.Clean(w.lister.BasePath()) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchChild(event.Name)
		}
		return
	}

	// the kernel drops the watch of a removed directory, this only tidies renames
	_ = w.watcher.Remove(event.Name)
}

func (w *Watcher) watchChild(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Debug("failed to watch directory", zap.String("path", path), zap.Error(err))
	}
}

func (w *Watcher) rescan(ctx context.Context) error {
	names, err := w.lister.ListRepositories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}

	w.mu.Lock()
	appeared, disappeared := lo.Difference(names, w.known)
	w.known = names
	w.discovered.Set(float64(len(names)))
	w.mu.Unlock()

	for _, name := range appeared {
		w.logger.Info("repository discovered", zap.String("repository", name))
	}
	for _, name := range disappeared {
		w.logger.Info("repository gone", zap.String("repository", name))
	}

	return nil
}
