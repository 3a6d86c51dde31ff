package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService runs the upload pipeline: selection, normalisation,
// submission, notification and history. At most one upload runs at a time.
type UploadService struct {
	selection  driving.SelectionState
	normalizer driving.Normalizer
	submitter  driving.Submitter
	notifier   driving.OutcomeNotifier
	blobs      driven.BlobOpener
	history    driven.UploadStore

	inFlight atomic.Bool
	newID    func() string
	now      func() time.Time
}

// NewUploadService creates an upload service.
func NewUploadService(
	selection driving.SelectionState,
	normalizer driving.Normalizer,
	submitter driving.Submitter,
	notifier driving.OutcomeNotifier,
) *UploadService {
	return &UploadService{
		selection:  selection,
		normalizer: normalizer,
		submitter:  submitter,
		notifier:   notifier,
		newID:      func() string { return uuid.New().String() },
		now:        time.Now,
	}
}

// SetBlobOpener sets the file opener used by AttachFile.
func (s *UploadService) SetBlobOpener(blobs driven.BlobOpener) {
	s.blobs = blobs
}

// SetHistoryStore sets the store that records every attempt.
func (s *UploadService) SetHistoryStore(history driven.UploadStore) {
	s.history = history
}

// InFlight reports whether an upload is currently running.
func (s *UploadService) InFlight() bool {
	return s.inFlight.Load()
}

// AttachFile opens ref and selects it as the pending file.
func (s *UploadService) AttachFile(ctx context.Context, ref string) (*domain.Blob, error) {
	if s.blobs == nil {
		return nil, domain.ErrNotImplemented
	}
	blob, err := s.blobs.Open(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	s.selection.SelectFile(*blob)
	return blob, nil
}

// Upload runs the pipeline for the current selection.
func (s *UploadService) Upload(ctx context.Context) (*domain.UploadRecord, error) {
	if !s.acquire(ctx) {
		return nil, domain.ErrSubmissionInFlight
	}
	defer s.release()
	return s.run(ctx)
}

// UploadFile selects connectorID and ref, then runs the pipeline.
// Selection happens under the in-flight guard so concurrent callers
// cannot interleave their selections.
func (s *UploadService) UploadFile(ctx context.Context, connectorID, ref string) (*domain.UploadRecord, error) {
	if !s.acquire(ctx) {
		return nil, domain.ErrSubmissionInFlight
	}
	defer s.release()

	if err := s.selection.SelectConnector(connectorID); err != nil {
		s.notifier.Report(ctx, domain.SubmissionResult{}, err)
		return nil, err
	}
	if _, err := s.AttachFile(ctx, ref); err != nil {
		s.notifier.Report(ctx, domain.SubmissionResult{}, err)
		return nil, err
	}
	return s.run(ctx)
}

// acquire sets the in-flight guard, reporting a rejected trigger.
func (s *UploadService) acquire(ctx context.Context) bool {
	if s.inFlight.CompareAndSwap(false, true) {
		return true
	}
	s.notifier.Report(ctx, domain.SubmissionResult{}, domain.ErrSubmissionInFlight)
	return false
}

// release clears the guard; it runs on every path so a failed upload
// never leaves submission disabled.
func (s *UploadService) release() {
	s.inFlight.Store(false)
}

// run executes one attempt. The caller must hold the guard.
func (s *UploadService) run(ctx context.Context) (*domain.UploadRecord, error) {
	connector, hasConnector := s.selection.Connector()
	blob, hasFile := s.selection.File()
	if !hasConnector || !hasFile {
		s.notifier.Report(ctx, domain.SubmissionResult{}, domain.ErrNotReady)
		return nil, domain.ErrNotReady
	}

	logger.Section("Upload")
	record := &domain.UploadRecord{
		ID:            s.newID(),
		ConnectorID:   connector.ID,
		FileName:      blob.Name,
		SourceAPIName: connector.SourceAPIName,
		ObjectAPIName: connector.ObjectAPIName,
		Bytes:         blob.Size(),
		StartedAt:     s.now().UTC(),
	}

	// Submission starts only once normalisation has fully completed.
	payload, err := s.normalizer.Normalize(blob, connector)
	if err != nil {
		return s.finish(ctx, record, domain.SubmissionResult{}, err)
	}
	record.Rows = payload.Rows

	result, err := s.submitter.Submit(ctx, payload)
	return s.finish(ctx, record, result, err)
}

// finish classifies the attempt, reports it and records history.
func (s *UploadService) finish(
	ctx context.Context,
	record *domain.UploadRecord,
	result domain.SubmissionResult,
	err error,
) (*domain.UploadRecord, error) {
	record.FinishedAt = s.now().UTC()
	switch {
	case err != nil:
		record.Status = domain.UploadErrored
		record.Error = err.Error()
	case result.IsSuccess():
		record.Status = domain.UploadSucceeded
	default:
		record.Status = domain.UploadFailed
		record.ErrorLocation = result.ErrorLocation
	}

	s.notifier.Report(ctx, result, err)

	if s.history != nil {
		if saveErr := s.history.Save(ctx, record); saveErr != nil {
			logger.Warn("recording upload %s: %v", record.ID, saveErr)
		}
	}

	logger.Info("upload %s finished: %s", record.ID, record.Status)
	return record, err
}
