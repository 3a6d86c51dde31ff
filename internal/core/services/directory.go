package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure ConnectorDirectory implements the interface.
var _ driving.ConnectorDirectory = (*ConnectorDirectory)(nil)

// ConnectorDirectory holds the snapshot of connectors fetched at startup.
// Lookups go through a map keyed by connector ID, so a selection matches
// at most one connector.
type ConnectorDirectory struct {
	source driven.ConnectorSource
	cache  driven.ConnectorStore

	mu         sync.RWMutex
	connectors []domain.Connector
	byID       map[string]domain.Connector
	loaded     bool
}

// NewConnectorDirectory creates a directory backed by source.
// cache may be nil.
func NewConnectorDirectory(source driven.ConnectorSource, cache driven.ConnectorStore) *ConnectorDirectory {
	return &ConnectorDirectory{
		source: source,
		cache:  cache,
		byID:   make(map[string]domain.Connector),
	}
}

// Load fetches the connector list and replaces the snapshot.
// When the remote call fails and a cached snapshot exists, the cache is used.
func (d *ConnectorDirectory) Load(ctx context.Context) ([]domain.Connector, error) {
	if d.source == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Connector Directory")
	connectors, err := d.source.ListConnectors(ctx)
	if err != nil {
		cached, cacheErr := d.loadCached(ctx)
		if cacheErr != nil || len(cached) == 0 {
			return nil, fmt.Errorf("list connectors: %w", err)
		}
		logger.Warn("connector list unavailable, using cached snapshot: %v", err)
		connectors = cached
	} else if d.cache != nil {
		if cacheErr := d.cache.ReplaceAll(ctx, connectors); cacheErr != nil {
			logger.Warn("caching connector snapshot: %v", cacheErr)
		}
	}

	d.setSnapshot(connectors)
	logger.Debug("loaded %d connectors", len(d.List()))
	return d.List(), nil
}

func (d *ConnectorDirectory) loadCached(ctx context.Context) ([]domain.Connector, error) {
	if d.cache == nil {
		return nil, domain.ErrNotImplemented
	}
	return d.cache.List(ctx)
}

// setSnapshot rebuilds the ordered list and the ID map.
// Duplicate IDs keep the first occurrence.
func (d *ConnectorDirectory) setSnapshot(connectors []domain.Connector) {
	ordered := make([]domain.Connector, 0, len(connectors))
	byID := make(map[string]domain.Connector, len(connectors))
	for i := range connectors {
		c := connectors[i]
		if _, dup := byID[c.ID]; dup {
			logger.Warn("duplicate connector id %q ignored", c.ID)
			continue
		}
		byID[c.ID] = c
		ordered = append(ordered, c)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectors = ordered
	d.byID = byID
	d.loaded = true
}

// List returns a copy of the snapshot in directory order.
func (d *ConnectorDirectory) List() []domain.Connector {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]domain.Connector, len(d.connectors))
	copy(result, d.connectors)
	return result
}

// Get looks a connector up by ID.
func (d *ConnectorDirectory) Get(id string) (*domain.Connector, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.loaded {
		return nil, domain.ErrDirectoryNotLoaded
	}
	c, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrLookup, id)
	}
	return &c, nil
}

// Loaded reports whether a snapshot is available.
func (d *ConnectorDirectory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}
