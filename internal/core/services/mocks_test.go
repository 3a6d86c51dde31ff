package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// MockConnectorSource is a driven.ConnectorSource for tests.
type MockConnectorSource struct {
	ListConnectorsFunc func(ctx context.Context) ([]domain.Connector, error)
	calls              int
}

func (m *MockConnectorSource) ListConnectors(ctx context.Context) ([]domain.Connector, error) {
	m.calls++
	if m.ListConnectorsFunc != nil {
		return m.ListConnectorsFunc(ctx)
	}
	return nil, nil
}

// MockIngestionClient is a driven.IngestionClient that records requests.
type MockIngestionClient struct {
	SubmitIngestionFunc func(ctx context.Context, req domain.IngestionRequest) (*domain.IngestionResponse, error)

	mu       sync.Mutex
	requests []domain.IngestionRequest
}

func (m *MockIngestionClient) SubmitIngestion(
	ctx context.Context,
	req domain.IngestionRequest,
) (*domain.IngestionResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.SubmitIngestionFunc != nil {
		return m.SubmitIngestionFunc(ctx, req)
	}
	return &domain.IngestionResponse{Success: true}, nil
}

func (m *MockIngestionClient) Requests() []domain.IngestionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.IngestionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// MockNotifier is a driven.Notifier that records notices.
type MockNotifier struct {
	NotifyFunc func(ctx context.Context, notice domain.Notice) error

	mu      sync.Mutex
	notices []domain.Notice
}

func (m *MockNotifier) Notify(ctx context.Context, notice domain.Notice) error {
	m.mu.Lock()
	m.notices = append(m.notices, notice)
	m.mu.Unlock()
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, notice)
	}
	return nil
}

func (m *MockNotifier) Notices() []domain.Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notice, len(m.notices))
	copy(out, m.notices)
	return out
}

// MockBlobOpener is a driven.BlobOpener serving blobs from a map.
type MockBlobOpener struct {
	Blobs    map[string]domain.Blob
	OpenFunc func(ctx context.Context, ref string) (*domain.Blob, error)
}

func (m *MockBlobOpener) Open(ctx context.Context, ref string) (*domain.Blob, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, ref)
	}
	blob, ok := m.Blobs[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &blob, nil
}

func testConnectors() []domain.Connector {
	return []domain.Connector{
		{ID: "0Xk1", Label: "Leads", SourceAPIName: "leads_src", ObjectAPIName: "Lead__dlm"},
		{ID: "0Xk2", Label: "Contacts", SourceAPIName: "contacts_src", ObjectAPIName: "Contact__dlm"},
	}
}

func csvBlob(name, content string) domain.Blob {
	return domain.Blob{Name: name, MIMEType: "text/csv", Data: []byte(content)}
}
