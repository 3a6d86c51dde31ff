package driven

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// ConnectorStore caches the last connector directory snapshot.
type ConnectorStore interface {
	// ReplaceAll swaps the cached snapshot for connectors, keeping their order.
	ReplaceAll(ctx context.Context, connectors []domain.Connector) error

	// List returns the cached snapshot in its original order.
	List(ctx context.Context) ([]domain.Connector, error)
}

// UploadStore persists upload history.
type UploadStore interface {
	// Save stores or updates an upload record.
	Save(ctx context.Context, record *domain.UploadRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.UploadRecord, error)

	// List returns the most recent records first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.UploadRecord, error)
}
