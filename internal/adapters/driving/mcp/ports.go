package mcp

import (
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Directory provides the connector snapshot.
	Directory driving.ConnectorDirectory

	// Upload runs the upload pipeline.
	Upload driving.UploadService

	// History reads past upload attempts. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Directory == nil {
		return ErrMissingDirectory
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	return nil
}
