package confloader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies callbacks when a watched config file is rewritten.
// It watches the containing directory rather than the file itself so
// that editors which replace the file by rename keep triggering.
type Watcher struct {
	fs  *fsnotify.Watcher
	log *slog.Logger

	mu        sync.RWMutex
	files     map[string]struct{}
	dirs      map[string]struct{}
	callbacks []func(path string)

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for watch events and errors.
func WithWatcherLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.log = log }
}

// NewWatcher returns a watcher with no files registered yet.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	w := &Watcher{
		fs:    fs,
		log:   slog.Default(),
		files: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch registers a config file. May be called for several files; the
// containing directory is only added to the fs watcher once.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	return nil
}

// OnChange registers a callback invoked with the path of the changed
// file. Callbacks run on the watcher goroutine and should return
// quickly.
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, fn)
	w.mu.Unlock()
}

// Start blocks processing events until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watch error", "error", err)
		case <-w.stop:
			return
		}
	}
}

// StartAsync runs Start on its own goroutine.
func (w *Watcher) StartAsync() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Start()
	}()
}

// Stop ends event processing and releases the fs watcher. Safe to
// call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	// Writes and renames both matter: a rename-based save lands as a
	// Create of the watched name.
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.RLock()
	_, watched := w.files[abs]
	callbacks := make([]func(string), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	if !watched {
		return
	}
	w.log.Debug("config file changed", "path", abs, "op", ev.Op.String())
	for _, fn := range callbacks {
		fn(abs)
	}
}
