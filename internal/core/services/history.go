package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads past upload attempts.
type HistoryService struct {
	store driven.UploadStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.UploadStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns the most recent attempts first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", domain.ErrInvalidInput, limit)
	}
	return s.store.List(ctx, limit)
}

// Get retrieves one attempt by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.UploadRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}
