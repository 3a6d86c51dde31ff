// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewUpload is the connector picker, file input and upload trigger.
	ViewUpload
	// ViewHistory lists past upload attempts.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewUpload:
		return "upload"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ConnectorsLoaded carries the connector directory snapshot.
type ConnectorsLoaded struct {
	Connectors []domain.Connector
	Err        error
}

// ConnectorSelected signals the user picked a connector.
type ConnectorSelected struct {
	Connector domain.Connector
	Err       error
}

// FileAttached carries the result of opening a file reference.
type FileAttached struct {
	Ref  string
	Blob *domain.Blob
	Err  error
}

// UploadStarted signals an upload was accepted and is running.
type UploadStarted struct{}

// UploadFinished carries the record of a completed attempt.
// Record is nil when the attempt was rejected before it started.
type UploadFinished struct {
	Record *domain.UploadRecord
	Err    error
}

// HistoryLoaded carries recent upload attempts.
type HistoryLoaded struct {
	Records []domain.UploadRecord
	Err     error
}

// NoticeReceived carries a notice for the status bar toast.
type NoticeReceived struct {
	Notice domain.Notice
}

// NoticeExpired asks the status bar to drop the toast with the given sequence.
type NoticeExpired struct {
	Seq int
}
