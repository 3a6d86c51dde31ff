// Package mcp provides an MCP (Model Context Protocol) server adapter for ingest.
// It lets AI assistants list connectors, upload CSV files and read upload history.
package mcp

import "errors"

// ErrMissingDirectory is returned when the connector directory is not provided.
var ErrMissingDirectory = errors.New("mcp: connector directory is required")

// ErrMissingUploadService is returned when the upload service is not provided.
var ErrMissingUploadService = errors.New("mcp: upload service is required")
