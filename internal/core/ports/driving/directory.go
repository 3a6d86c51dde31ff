package driving

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// ConnectorDirectory exposes the snapshot of available connectors.
type ConnectorDirectory interface {
	// Load fetches the connector list once and replaces the snapshot.
	Load(ctx context.Context) ([]domain.Connector, error)

	// List returns the current snapshot in directory order.
	List() []domain.Connector

	// Get looks a connector up by ID. Returns domain.ErrLookup on a miss.
	Get(id string) (*domain.Connector, error)

	// Loaded reports whether a snapshot is available.
	Loaded() bool
}
