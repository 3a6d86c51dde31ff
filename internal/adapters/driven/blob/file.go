package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// SchemeFile is the scheme for local files.
const SchemeFile = "file"

// Ensure FileSource implements the interface.
var _ driven.BlobSource = (*FileSource)(nil)

// FileSource reads files from the local filesystem.
type FileSource struct{}

// NewFileSource creates a local file source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Scheme returns "file".
func (s *FileSource) Scheme() string {
	return SchemeFile
}

// Open reads a local path or file:// reference.
func (s *FileSource) Open(ctx context.Context, ref string) (*domain.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := trimScheme(ref, SchemeFile)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > MaxBlobSize {
		return nil, tooLarge(path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return &domain.Blob{
		Name:     name,
		MIMEType: detectMIME(name, data),
		Data:     data,
	}, nil
}
