package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.BlobOpener = (*Router)(nil)

const (
	// MaxBlobSize is the largest file accepted for upload (64MB).
	MaxBlobSize = 64 << 20

	// DefaultTimeout bounds remote source requests.
	DefaultTimeout = 60 * time.Second
)

// schemeSeparator separates the scheme from the rest of a reference.
const schemeSeparator = "://"

// Router dispatches references to sources by scheme.
// References without a scheme are treated as local paths.
type Router struct {
	mu      sync.RWMutex
	sources map[string]driven.BlobSource
}

// NewRouter creates a router with the given sources registered.
func NewRouter(sources ...driven.BlobSource) *Router {
	r := &Router{sources: make(map[string]driven.BlobSource)}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds a source, replacing any source for the same scheme.
func (r *Router) Register(source driven.BlobSource) {
	if source == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.Scheme()] = source
}

// Schemes returns the registered schemes in sorted order.
func (r *Router) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.sources))
	for s := range r.sources {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Open reads ref through the source registered for its scheme.
func (r *Router) Open(ctx context.Context, ref string) (*domain.Blob, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("%w: empty file reference", domain.ErrInvalidInput)
	}

	scheme := SchemeOf(ref)
	r.mu.RLock()
	source, ok := r.sources[scheme]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSource, scheme)
	}
	return source.Open(ctx, ref)
}

// SchemeOf returns the scheme of ref, or SchemeFile when it has none.
func SchemeOf(ref string) string {
	if idx := strings.Index(ref, schemeSeparator); idx > 0 {
		return strings.ToLower(ref[:idx])
	}
	return SchemeFile
}

// trimScheme removes "<scheme>://" from the start of ref.
func trimScheme(ref, scheme string) string {
	prefix := scheme + schemeSeparator
	if len(ref) >= len(prefix) && strings.EqualFold(ref[:len(prefix)], prefix) {
		return ref[len(prefix):]
	}
	return ref
}

// detectMIME guesses a content type from the file name, then the content.
func detectMIME(name string, data []byte) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == ".csv" {
		return "text/csv"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// tooLarge builds the error for files over MaxBlobSize.
func tooLarge(name string, size int64) error {
	return fmt.Errorf("%w: %s is %d bytes, limit is %d", domain.ErrInvalidInput, name, size, MaxBlobSize)
}

// readLimited reads r fully, failing when it exceeds MaxBlobSize.
func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBlobSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > MaxBlobSize {
		return nil, tooLarge(name, int64(len(data)))
	}
	return data, nil
}
