package driven

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// BlobOpener reads a file reference fully into memory.
type BlobOpener interface {
	Open(ctx context.Context, ref string) (*domain.Blob, error)
}

// BlobSource is a BlobOpener for one reference scheme.
type BlobSource interface {
	BlobOpener

	// Scheme returns the reference scheme handled (e.g. "file", "gdrive").
	Scheme() string
}
