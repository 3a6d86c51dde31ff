package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// Ensure ConnectorStore implements the interface.
var _ driven.ConnectorStore = (*ConnectorStore)(nil)

// ConnectorStore is an in-memory implementation of driven.ConnectorStore.
type ConnectorStore struct {
	mu         sync.RWMutex
	connectors []domain.Connector
}

// NewConnectorStore creates a new in-memory connector store.
func NewConnectorStore() *ConnectorStore {
	return &ConnectorStore{}
}

// ReplaceAll swaps the cached snapshot.
func (s *ConnectorStore) ReplaceAll(_ context.Context, connectors []domain.Connector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectors = make([]domain.Connector, len(connectors))
	copy(s.connectors, connectors)
	return nil
}

// List returns the cached snapshot in order.
func (s *ConnectorStore) List(_ context.Context) ([]domain.Connector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Connector, len(s.connectors))
	copy(result, s.connectors)
	return result, nil
}
