// Package watch uploads CSV files dropped into a directory.
// It is a driving adapter: filesystem events trigger the upload pipeline.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// DefaultSettle is how long a file must be quiet before it is uploaded.
const DefaultSettle = 500 * time.Millisecond

// Handler receives the outcome of each upload.
type Handler func(path string, record *domain.UploadRecord, err error)

// Watcher uploads files that appear or change in a directory.
// Uploads run one at a time in the order files settle.
type Watcher struct {
	dir         string
	connectorID string
	upload      driving.UploadService
	settle      time.Duration
	extensions  []string
	handler     Handler

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before upload.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithExtensions limits uploads to files with these extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = nil
		for _, e := range exts {
			e = strings.ToLower(e)
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			w.extensions = append(w.extensions, e)
		}
	}
}

// WithHandler sets the callback invoked after each upload.
func WithHandler(h Handler) Option {
	return func(w *Watcher) {
		w.handler = h
	}
}

// New creates a watcher for dir uploading through connectorID.
func New(dir, connectorID string, upload driving.UploadService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:         dir,
		connectorID: connectorID,
		upload:      upload,
		settle:      DefaultSettle,
		extensions:  []string{".csv"},
		handler:     logResult,
		pending:     make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.upload == nil {
		return errors.New("watch: upload service is required")
	}
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("watching %s for %s files", w.dir, strings.Join(w.extensions, ", "))

	ready := make(chan string, 16)
	done := make(chan struct{})
	defer func() {
		close(done)
		w.stopPending()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.schedule(path, ready, done)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case path := <-ready:
			record, err := w.upload.UploadFile(ctx, w.connectorID, path)
			w.handler(path, record, err)
		}
	}
}

// handleFsEvent returns the path to upload for an event, if any.
// Only creates and writes of visible regular files with a matching
// extension qualify.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return "", false
	}
	if !w.matches(base) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

func (w *Watcher) matches(name string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range w.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// schedule (re)starts the settle timer for path.
func (w *Watcher) schedule(path string, ready chan<- string, done <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case ready <- path:
		case <-done:
		}
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func logResult(path string, record *domain.UploadRecord, err error) {
	switch {
	case err != nil:
		logger.Error("upload %s: %v", path, err)
	case record != nil && record.Status == domain.UploadFailed:
		logger.Error("upload %s failed: error location %s", path, record.ErrorLocation)
	default:
		logger.Info("uploaded %s", path)
	}
}
