// Package tui provides an interactive terminal user interface for ingest.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Directory provides the connector snapshot.
	Directory driving.ConnectorDirectory

	// Selection tracks the chosen connector and file.
	Selection driving.SelectionState

	// Upload runs the upload pipeline.
	Upload driving.UploadService

	// History reads past upload attempts. Optional.
	History driving.HistoryService

	// Settings provides the configured endpoint. Optional.
	Settings driving.SettingsService

	// Notices delivers outcome notices for the status bar. Optional.
	Notices <-chan domain.Notice
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	directory driving.ConnectorDirectory,
	selection driving.SelectionState,
	upload driving.UploadService,
) *Ports {
	return &Ports{
		Directory: directory,
		Selection: selection,
		Upload:    upload,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Directory == nil {
		return ErrMissingDirectory
	}
	if p.Selection == nil {
		return ErrMissingSelection
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	return nil
}

// endpoint returns the configured base URL, or "" when unknown.
func (p *Ports) endpoint() string {
	if p.Settings == nil {
		return ""
	}
	settings, err := p.Settings.Get()
	if err != nil || settings == nil {
		return ""
	}
	return settings.Endpoint.BaseURL
}
