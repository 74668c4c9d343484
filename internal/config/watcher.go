package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/moolen/fmea/internal/logging"
)

// ChangeCallback is called with the watched path once on Start and again
// after every debounced change. Errors are logged; the watcher keeps going.
type ChangeCallback func(path string) error

// WatcherConfig holds configuration for the FileWatcher.
type WatcherConfig struct {
	// FilePath is the file to watch
	FilePath string

	// DebounceMillis coalesces change events within this period into a
	// single callback. Default: 300ms
	DebounceMillis int
}

// FileWatcher watches one file and invokes a callback with debouncing so
// an editor's save sequence triggers one reload.
type FileWatcher struct {
	config   WatcherConfig
	callback ChangeCallback
	logger   *logging.Logger
	cancel   context.CancelFunc
	stopped  chan struct{}
	ready    chan struct{}
	mu       sync.Mutex

	debounceTimer *time.Timer
}

// NewFileWatcher creates a watcher for config.FilePath.
func NewFileWatcher(config WatcherConfig, callback ChangeCallback) (*FileWatcher, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("FilePath cannot be empty")
	}
	if callback == nil {
		return nil, fmt.Errorf("callback cannot be nil")
	}
	if config.DebounceMillis <= 0 {
		config.DebounceMillis = 300
	}

	return &FileWatcher{
		config:   config,
		callback: callback,
		logger:   logging.GetLogger("config.watch").WithField("file", config.FilePath),
		stopped:  make(chan struct{}),
		ready:    make(chan struct{}),
	}, nil
}

// Name identifies the watcher as a lifecycle component.
func (w *FileWatcher) Name() string {
	return "file-watcher"
}

// Start runs the callback once, then watches the file in the background.
// It returns once the fsnotify watch is in place. An error from the
// initial callback is returned.
func (w *FileWatcher) Start(ctx context.Context) error {
	if err := w.callback(w.config.FilePath); err != nil {
		return fmt.Errorf("initial callback failed: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	go w.watchLoop(watchCtx)

	select {
	case <-w.ready:
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for file watcher to initialize")
	}

	return nil
}

func (w *FileWatcher) signalReady() {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.ready:
	default:
		close(w.ready)
	}
}

func (w *FileWatcher) watchLoop(ctx context.Context) {
	defer close(w.stopped)
	defer w.signalReady()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error("failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.config.FilePath); err != nil {
		w.logger.Error("failed to watch file: %v", err)
		return
	}

	w.logger.Debug("watching for changes (debounce: %dms)", w.config.DebounceMillis)
	w.signalReady()

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			// Atomic saves replace the inode; the watch has to be re-added.
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(50 * time.Millisecond)
				if err := watcher.Add(w.config.FilePath); err != nil {
					w.logger.Warn("failed to re-add watch after %s: %v", event.Op, err)
				}
			}
			w.handleFileChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error: %v", err)
		}
	}
}

func (w *FileWatcher) handleFileChange(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(
		time.Duration(w.config.DebounceMillis)*time.Millisecond,
		func() {
			if ctx.Err() != nil {
				return
			}
			if err := w.callback(w.config.FilePath); err != nil {
				w.logger.Warn("reload failed (keeping previous state): %v", err)
			}
		},
	)
}

func (w *FileWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}

// Stop stops the watch loop, waiting at most ctx's deadline or 5 seconds.
func (w *FileWatcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	} else {
		return nil
	}

	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for watcher to stop")
	}
}
