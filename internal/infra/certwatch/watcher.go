// Package certwatch reloads the server TLS key pair on file changes.
package certwatch

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher serves the most recently loaded TLS key pair and refreshes it
// whenever the certificate or key file changes on disk. GetCertificate
// plugs into tls.Config, so rotated certificates take effect on the next
// handshake without a server restart.
type Watcher struct {
	certFile string
	keyFile  string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	done     chan struct{}
	stopOnce sync.Once

	mu   sync.RWMutex
	cert *tls.Certificate

	// Rotation tooling rewrites both files back to back; the debounce
	// collapses the burst into a single reload.
	debounce   time.Duration
	reloadMu   sync.Mutex
	lastReload time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets the minimum interval between reloads.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher loads the initial key pair and sets up watches on the
// directories holding the certificate and key files. Watching the
// directories rather than the files catches vim-style renames.
func NewWatcher(certFile, keyFile string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		certFile: certFile,
		keyFile:  keyFile,
		done:     make(chan struct{}),
		logger:   slog.Default(),
		debounce: 500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(w)
	}

	if err := w.reload(); err != nil {
		return nil, fmt.Errorf("certwatch: initial load: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("certwatch: create watcher: %w", err)
	}

	certDir := filepath.Dir(certFile)
	if err := fw.Add(certDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("certwatch: watch dir %s: %w", certDir, err)
	}
	if keyDir := filepath.Dir(keyFile); keyDir != certDir {
		if err := fw.Add(keyDir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("certwatch: watch dir %s: %w", keyDir, err)
		}
	}

	w.watcher = fw
	return w, nil
}

// Start watches for key pair changes.
// This function blocks until Stop() is called.
func (w *Watcher) Start() {
	w.logger.Info("certificate watcher started",
		"cert_file", w.certFile,
		"key_file", w.keyFile,
	)

	certBase := filepath.Base(w.certFile)
	keyBase := filepath.Base(w.keyFile)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// The watch covers whole directories; skip sibling files.
			base := filepath.Base(event.Name)
			if base != certBase && base != keyBase {
				continue
			}
			// Only reload on write or create events
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			w.logger.Debug("key pair file changed",
				"file", event.Name,
				"op", event.Op.String(),
			)

			if err := w.debouncedReload(); err != nil {
				// The previous key pair stays in service.
				w.logger.Error("key pair reload failed",
					"error", err,
					"cert_file", w.certFile,
				)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("certificate watcher error",
				"error", err,
			)

		case <-w.done:
			return
		}
	}
}

// StartAsync starts watching in a goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop stops the watcher. Calling Stop more than once is harmless.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// GetCertificate returns the key pair most recently loaded from disk.
// It has the signature of tls.Config.GetCertificate.
func (w *Watcher) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cert, nil
}

// debouncedReload drops reloads that arrive within the debounce window
// of the previous one.
func (w *Watcher) debouncedReload() error {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	now := time.Now()
	if now.Sub(w.lastReload) < w.debounce {
		return nil
	}
	w.lastReload = now

	// Give the writer a moment to finish the second file of the pair.
	time.Sleep(100 * time.Millisecond)

	return w.reload()
}

func (w *Watcher) reload() error {
	cert, err := tls.LoadX509KeyPair(w.certFile, w.keyFile)
	if err != nil {
		return fmt.Errorf("load key pair: %w", err)
	}

	w.mu.Lock()
	w.cert = &cert
	w.mu.Unlock()

	w.logger.Info("TLS key pair loaded",
		"cert_file", w.certFile,
	)

	return nil
}
