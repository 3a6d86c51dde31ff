package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

type uploadFixture struct {
	service   *UploadService
	selection *SelectionState
	client    *MockIngestionClient
	sink      *MockNotifier
	history   *memory.UploadStore
}

func newUploadFixture(t *testing.T, client *MockIngestionClient) *uploadFixture {
	t.Helper()
	if client == nil {
		client = &MockIngestionClient{}
	}
	selection := NewSelectionState(loadedDirectory(t))
	sink := &MockNotifier{}
	history := memory.NewUploadStore()

	svc := NewUploadService(selection, NewNormalizer(), NewSubmitter(client), NewOutcomeNotifier(sink))
	svc.SetHistoryStore(history)
	svc.SetBlobOpener(&MockBlobOpener{Blobs: map[string]domain.Blob{
		"leads.csv": csvBlob("leads.csv", "First Name,Last Name\nAda,Lovelace\n"),
		"empty.csv": csvBlob("empty.csv", ""),
	}})

	ids := 0
	svc.newID = func() string {
		ids++
		return "upload-" + string(rune('0'+ids))
	}
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	return &uploadFixture{
		service:   svc,
		selection: selection,
		client:    client,
		sink:      sink,
		history:   history,
	}
}

func TestUploadService_Upload_Success(t *testing.T) {
	f := newUploadFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.selection.SelectConnector("0Xk1"))
	_, err := f.service.AttachFile(ctx, "leads.csv")
	require.NoError(t, err)

	record, err := f.service.Upload(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "upload-1", record.ID)
	assert.Equal(t, domain.UploadSucceeded, record.Status)
	assert.Equal(t, "0Xk1", record.ConnectorID)
	assert.Equal(t, "leads.csv", record.FileName)
	assert.Equal(t, 2, record.Rows)

	reqs := f.client.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "leads_src", reqs[0].SourceAPIName)
	assert.Equal(t, "Lead__dlm", reqs[0].ObjectAPIName)
	assert.Equal(t, "FirstName,LastName\nAda,Lovelace", decodePayload(t, &domain.NormalizedPayload{
		EncodedContent: reqs[0].EncodedCSVData,
	}))

	notices := f.sink.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Upload complete", notices[0].Title)

	saved, err := f.history.Get(ctx, "upload-1")
	require.NoError(t, err)
	assert.Equal(t, domain.UploadSucceeded, saved.Status)
	assert.False(t, f.service.InFlight())
}

func TestUploadService_Upload_LogicalFailure(t *testing.T) {
	f := newUploadFixture(t, &MockIngestionClient{
		SubmitIngestionFunc: func(_ context.Context, _ domain.IngestionRequest) (*domain.IngestionResponse, error) {
			return &domain.IngestionResponse{Success: false, ErrorLocation: "Row 4"}, nil
		},
	})
	ctx := context.Background()

	record, err := f.service.UploadFile(ctx, "0Xk1", "leads.csv")
	require.NoError(t, err)

	assert.Equal(t, domain.UploadFailed, record.Status)
	assert.Equal(t, "Row 4", record.ErrorLocation)

	notices := f.sink.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.NoticeError, notices[0].Level)
	assert.Contains(t, notices[0].Message, "Row 4")
	assert.False(t, f.service.InFlight())
}

func TestUploadService_Upload_EmptyFileNeverCallsClient(t *testing.T) {
	f := newUploadFixture(t, nil)
	ctx := context.Background()

	record, err := f.service.UploadFile(ctx, "0Xk1", "empty.csv")

	assert.ErrorIs(t, err, domain.ErrEmptyFile)
	require.NotNil(t, record)
	assert.Equal(t, domain.UploadErrored, record.Status)
	assert.Empty(t, f.client.Requests())

	notices := f.sink.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.NoticeError, notices[0].Level)
	assert.False(t, f.service.InFlight())
}

func TestUploadService_Upload_TransportErrorReenables(t *testing.T) {
	calls := 0
	f := newUploadFixture(t, &MockIngestionClient{
		SubmitIngestionFunc: func(_ context.Context, _ domain.IngestionRequest) (*domain.IngestionResponse, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("dial tcp: refused")
			}
			return &domain.IngestionResponse{Success: true}, nil
		},
	})
	ctx := context.Background()

	record, err := f.service.UploadFile(ctx, "0Xk1", "leads.csv")
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, domain.UploadErrored, record.Status)
	assert.False(t, f.service.InFlight())

	// The selection survives, so a retry is a plain Upload.
	record, err = f.service.Upload(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UploadSucceeded, record.Status)

	all, err := f.history.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUploadService_Upload_NotReady(t *testing.T) {
	f := newUploadFixture(t, nil)

	record, err := f.service.Upload(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotReady)
	assert.Nil(t, record)
	assert.Empty(t, f.client.Requests())
	assert.Len(t, f.sink.Notices(), 1)
}

func TestUploadService_Upload_RejectsWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := newUploadFixture(t, &MockIngestionClient{
		SubmitIngestionFunc: func(_ context.Context, _ domain.IngestionRequest) (*domain.IngestionResponse, error) {
			close(started)
			<-release
			return &domain.IngestionResponse{Success: true}, nil
		},
	})
	ctx := context.Background()
	require.NoError(t, f.selection.SelectConnector("0Xk1"))
	_, err := f.service.AttachFile(ctx, "leads.csv")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, uploadErr := f.service.Upload(ctx)
		done <- uploadErr
	}()

	<-started
	assert.True(t, f.service.InFlight())

	_, err = f.service.Upload(ctx)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	_, err = f.service.UploadFile(ctx, "0Xk2", "leads.csv")
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.service.InFlight())
	assert.Len(t, f.client.Requests(), 1)
}

func TestUploadService_UploadFile_UnknownConnector(t *testing.T) {
	f := newUploadFixture(t, nil)

	record, err := f.service.UploadFile(context.Background(), "missing", "leads.csv")

	assert.ErrorIs(t, err, domain.ErrLookup)
	assert.Nil(t, record)
	assert.Empty(t, f.client.Requests())
	assert.False(t, f.service.InFlight())
}

func TestUploadService_UploadFile_MissingFile(t *testing.T) {
	f := newUploadFixture(t, nil)

	_, err := f.service.UploadFile(context.Background(), "0Xk1", "nope.csv")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.client.Requests())
}

func TestUploadService_AttachFile_NoOpener(t *testing.T) {
	svc := NewUploadService(NewSelectionState(nil), NewNormalizer(), NewSubmitter(nil), NewOutcomeNotifier(nil))

	_, err := svc.AttachFile(context.Background(), "leads.csv")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestUploadService_Upload_WithoutHistory(t *testing.T) {
	client := &MockIngestionClient{}
	selection := NewSelectionState(loadedDirectory(t))
	svc := NewUploadService(selection, NewNormalizer(), NewSubmitter(client), NewOutcomeNotifier(nil))

	require.NoError(t, selection.SelectConnector("0Xk2"))
	selection.SelectFile(csvBlob("c.csv", "Email Address\nada@example.com\n"))

	record, err := svc.Upload(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, domain.UploadSucceeded, record.Status)
}
