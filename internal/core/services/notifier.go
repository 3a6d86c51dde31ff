package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure OutcomeNotifier implements the interface.
var _ driving.OutcomeNotifier = (*OutcomeNotifier)(nil)

// Notice titles.
const (
	TitleUploadComplete = "Upload complete"
	TitleError          = "Error"
	TitleUploadFailed   = "Upload failed"
)

// OutcomeNotifier turns submission outcomes into notices and delivers them
// to a sink. Every outcome, including transport errors, produces a notice.
type OutcomeNotifier struct {
	mu   sync.RWMutex
	sink driven.Notifier
}

// NewOutcomeNotifier creates a notifier delivering to sink. sink may be nil.
func NewOutcomeNotifier(sink driven.Notifier) *OutcomeNotifier {
	return &OutcomeNotifier{sink: sink}
}

// SetSink replaces the delivery sink (the TUI swaps in its own).
func (n *OutcomeNotifier) SetSink(sink driven.Notifier) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sink = sink
}

// Report builds the notice for an outcome and delivers it.
func (n *OutcomeNotifier) Report(ctx context.Context, result domain.SubmissionResult, err error) domain.Notice {
	notice := BuildNotice(result, err)
	if err != nil {
		logger.Warn("upload: %v", err)
	}
	n.mu.RLock()
	sink := n.sink
	n.mu.RUnlock()
	if sink != nil {
		if sinkErr := sink.Notify(ctx, notice); sinkErr != nil {
			logger.Warn("delivering notice: %v", sinkErr)
		}
	}
	return notice
}

// BuildNotice maps an outcome to the notice shown to the user.
func BuildNotice(result domain.SubmissionResult, err error) domain.Notice {
	if err != nil {
		return domain.Notice{
			Level:       domain.NoticeError,
			Title:       TitleUploadFailed,
			Message:     describeError(err),
			Dismissible: true,
		}
	}
	if result.IsSuccess() {
		return domain.Notice{
			Level:       domain.NoticeSuccess,
			Title:       TitleUploadComplete,
			Dismissible: true,
		}
	}
	return domain.Notice{
		Level:       domain.NoticeError,
		Title:       TitleError,
		Message:     "Error location: " + result.ErrorLocation,
		Dismissible: true,
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyFile):
		return "the file has no rows"
	case errors.Is(err, domain.ErrDecode):
		return "the file is not valid UTF-8 text: " + err.Error()
	case errors.Is(err, domain.ErrLookup):
		return "the selected connector is no longer available"
	case errors.Is(err, domain.ErrNotReady):
		return "select a connector and a file first"
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return "an upload is already running"
	case errors.Is(err, domain.ErrTransport):
		return "could not reach the ingestion endpoint: " + err.Error()
	default:
		return err.Error()
	}
}
