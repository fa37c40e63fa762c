package file

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/spsearch/internal/logger"
)

const defaultReloadDelay = 100 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes on disk.
// The directory is watched rather than the file so editors that replace the
// file on save are still seen.
type Watcher struct {
	store    *ConfigStore
	onReload func(error)
	delay    time.Duration

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	pending  *time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadDelay sets how long writes must settle before reloading.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.delay = d }
}

// NewWatcher creates a watcher for store. onReload is called after every
// reload with the Load error, if any.
func NewWatcher(store *ConfigStore, onReload func(error), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		store:    store,
		onReload: onReload,
		delay:    defaultReloadDelay,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.store.Path())); err != nil {
		_ = fsw.Close()
		return err
	}

	w.mu.Lock()
	w.fsw = fsw
	w.mu.Unlock()

	logger.Debug("Watching %s for changes", w.store.Path())
	go w.run(ctx, fsw)
	return nil
}

// Stop ends watching and cancels any pending reload.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.pending != nil {
			w.pending.Stop()
			w.pending = nil
		}
		if w.fsw != nil {
			_ = w.fsw.Close()
		}
	})
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				w.scheduleReload()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.delay, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	err := w.store.Load()
	if err != nil {
		logger.Warn("Config reload failed: %v", err)
	} else {
		logger.Debug("Config reloaded from %s", w.store.Path())
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}
