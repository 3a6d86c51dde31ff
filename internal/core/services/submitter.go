package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure Submitter implements the interface.
var _ driving.Submitter = (*Submitter)(nil)

// Submitter sends normalised payloads to the ingestion endpoint and
// classifies the outcome. It never retries.
type Submitter struct {
	client driven.IngestionClient
}

// NewSubmitter creates a submitter over an ingestion client.
func NewSubmitter(client driven.IngestionClient) *Submitter {
	return &Submitter{client: client}
}

// Submit performs one ingestion call.
func (s *Submitter) Submit(ctx context.Context, payload *domain.NormalizedPayload) (domain.SubmissionResult, error) {
	if s.client == nil {
		return domain.SubmissionResult{}, domain.ErrNotImplemented
	}
	if payload == nil {
		return domain.SubmissionResult{}, domain.ErrInvalidInput
	}

	req := domain.IngestionRequest{
		EncodedCSVData: payload.EncodedContent,
		ObjectAPIName:  payload.ObjectAPIName,
		SourceAPIName:  payload.SourceAPIName,
	}

	logger.Debug("submitting %d rows to source=%s object=%s", payload.Rows, req.SourceAPIName, req.ObjectAPIName)
	resp, err := s.client.SubmitIngestion(ctx, req)
	if err != nil {
		if !errors.Is(err, domain.ErrTransport) {
			err = fmt.Errorf("%w: %w", domain.ErrTransport, err)
		}
		return domain.SubmissionResult{}, err
	}
	if resp == nil {
		return domain.SubmissionResult{}, fmt.Errorf("%w: empty response", domain.ErrTransport)
	}

	if resp.Success {
		return domain.Success(), nil
	}
	return domain.Failure(resp.ErrorLocation), nil
}
