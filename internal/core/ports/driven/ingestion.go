package driven

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// ConnectorSource lists the ingestion targets available to the user.
type ConnectorSource interface {
	// ListConnectors returns every connector the endpoint exposes.
	ListConnectors(ctx context.Context) ([]domain.Connector, error)
}

// IngestionClient sends normalised payloads to the remote endpoint.
type IngestionClient interface {
	// SubmitIngestion performs one ingestion call.
	// A returned response is a logical result (success or failure).
	// Network and protocol problems are returned as errors wrapping
	// domain.ErrTransport and carry no response.
	SubmitIngestion(ctx context.Context, req domain.IngestionRequest) (*domain.IngestionResponse, error)
}
