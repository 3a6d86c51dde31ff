package driving

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// Normalizer turns an uploaded blob into a transport-ready payload.
type Normalizer interface {
	// Normalize rewrites the header row and encodes the file for transport.
	// It fails with domain.ErrEmptyFile or domain.ErrDecode; it never
	// returns a partial payload.
	Normalize(blob domain.Blob, connector domain.Connector) (*domain.NormalizedPayload, error)
}

// Submitter sends a payload to the ingestion endpoint.
type Submitter interface {
	// Submit performs exactly one ingestion call, without retry.
	// Transport problems are returned as errors wrapping domain.ErrTransport.
	Submit(ctx context.Context, payload *domain.NormalizedPayload) (domain.SubmissionResult, error)
}

// OutcomeNotifier turns upload outcomes into user-facing notices.
type OutcomeNotifier interface {
	// Report builds the notice for a result or error and delivers it.
	Report(ctx context.Context, result domain.SubmissionResult, err error) domain.Notice
}

// UploadService coordinates selection, normalisation, submission and reporting.
type UploadService interface {
	// AttachFile opens a file reference and selects it.
	AttachFile(ctx context.Context, ref string) (*domain.Blob, error)

	// Upload runs the pipeline for the current selection.
	// The returned record describes the attempt even when err is non-nil,
	// unless the attempt was rejected before it started.
	Upload(ctx context.Context) (*domain.UploadRecord, error)

	// UploadFile selects connectorID and ref, then uploads.
	UploadFile(ctx context.Context, connectorID, ref string) (*domain.UploadRecord, error)

	// InFlight reports whether an upload is currently running.
	InFlight() bool
}

// HistoryService reads past upload attempts.
type HistoryService interface {
	// List returns the most recent attempts first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.UploadRecord, error)

	// Get retrieves one attempt by ID.
	Get(ctx context.Context, id string) (*domain.UploadRecord, error)
}
