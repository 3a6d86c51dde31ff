package mcp

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
)

// mockDirectory is a mock implementation of driving.ConnectorDirectory.
type mockDirectory struct {
	connectors []domain.Connector
	loaded     bool
	loads      int
	err        error
}

func (m *mockDirectory) Load(_ context.Context) ([]domain.Connector, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	m.loaded = true
	return m.connectors, nil
}

func (m *mockDirectory) List() []domain.Connector {
	if !m.loaded {
		return nil
	}
	return m.connectors
}

func (m *mockDirectory) Get(id string) (*domain.Connector, error) {
	for i := range m.connectors {
		if m.connectors[i].ID == id {
			return &m.connectors[i], nil
		}
	}
	return nil, domain.ErrLookup
}

func (m *mockDirectory) Loaded() bool { return m.loaded }

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	record      *domain.UploadRecord
	err         error
	connectorID string
	ref         string
}

func (m *mockUploadService) AttachFile(_ context.Context, ref string) (*domain.Blob, error) {
	return &domain.Blob{Name: ref}, nil
}

func (m *mockUploadService) Upload(_ context.Context) (*domain.UploadRecord, error) {
	return m.record, m.err
}

func (m *mockUploadService) UploadFile(_ context.Context, connectorID, ref string) (*domain.UploadRecord, error) {
	m.connectorID = connectorID
	m.ref = ref
	return m.record, m.err
}

func (m *mockUploadService) InFlight() bool { return false }

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.UploadRecord
	limit   int
	err     error
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.UploadRecord, error) {
	m.limit = limit
	return m.records, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.UploadRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Compile-time checks.
var (
	_ driving.ConnectorDirectory = (*mockDirectory)(nil)
	_ driving.UploadService      = (*mockUploadService)(nil)
	_ driving.HistoryService     = (*mockHistoryService)(nil)
)

func testConnectors() []domain.Connector {
	return []domain.Connector{
		{ID: "c1", Label: "Leads", SourceAPIName: "leads_src", ObjectAPIName: "Lead__dlm"},
		{ID: "c2", SourceAPIName: "contacts_src", ObjectAPIName: "Contact__dlm"},
	}
}
