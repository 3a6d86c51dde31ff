package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// defaultHistoryLimit is used when upload_history is called without a limit.
const defaultHistoryLimit = 20

// ListConnectorsInput is the input schema for the list_connectors tool.
type ListConnectorsInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"reload the directory from the ingestion API"`
}

// ListConnectorsOutput is the output schema for the list_connectors tool.
type ListConnectorsOutput struct {
	Connectors []ConnectorOutput `json:"connectors"`
	Count      int               `json:"count"`
}

// ConnectorOutput describes one connector.
type ConnectorOutput struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	SourceAPIName string `json:"source_api_name"`
	ObjectAPIName string `json:"object_api_name"`
}

// UploadInput is the input schema for the upload_csv tool.
type UploadInput struct {
	ConnectorID string `json:"connector_id" jsonschema:"ID of the connector to upload through"`
	File        string `json:"file" jsonschema:"file reference: local path, gdrive://<fileID> or github://owner/repo/path[@ref]"`
}

// UploadOutput is the output schema for the upload_csv and upload_history tools.
type UploadOutput struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	FileName      string    `json:"file_name"`
	ObjectAPIName string    `json:"object_api_name"`
	Rows          int       `json:"rows"`
	ErrorLocation string    `json:"error_location,omitempty"`
	Error         string    `json:"error,omitempty"`
	StartedAt     time.Time `json:"started_at"`
}

// HistoryInput is the input schema for the upload_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of attempts to return (default 20)"`
}

// HistoryOutput is the output schema for the upload_history tool.
type HistoryOutput struct {
	Uploads []UploadOutput `json:"uploads"`
	Count   int            `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_connectors",
		Description: "List the connectors CSV files can be uploaded through",
	}, s.handleListConnectors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_csv",
		Description: "Normalise a CSV file's header and upload it through a connector",
	}, s.handleUpload)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "upload_history",
			Description: "List recent upload attempts, newest first",
		}, s.handleHistory)
	}
}

// handleListConnectors handles the list_connectors tool invocation.
func (s *Server) handleListConnectors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListConnectorsInput,
) (*mcp.CallToolResult, ListConnectorsOutput, error) {
	connectors := s.ports.Directory.List()
	if input.Refresh || !s.ports.Directory.Loaded() {
		loaded, err := s.ports.Directory.Load(ctx)
		if err != nil {
			return nil, ListConnectorsOutput{}, fmt.Errorf("loading connectors: %w", err)
		}
		connectors = loaded
	}

	output := ListConnectorsOutput{
		Connectors: make([]ConnectorOutput, len(connectors)),
		Count:      len(connectors),
	}
	for i := range connectors {
		output.Connectors[i] = connectorOutput(&connectors[i])
	}
	return nil, output, nil
}

// handleUpload handles the upload_csv tool invocation.
// A logical failure reported by the endpoint is a successful call whose
// status is "failed"; pipeline errors are returned as tool errors.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	if input.ConnectorID == "" || input.File == "" {
		return nil, UploadOutput{}, fmt.Errorf("%w: connector_id and file are required", domain.ErrInvalidInput)
	}
	if !s.ports.Directory.Loaded() {
		if _, err := s.ports.Directory.Load(ctx); err != nil {
			return nil, UploadOutput{}, fmt.Errorf("loading connectors: %w", err)
		}
	}

	record, err := s.ports.Upload.UploadFile(ctx, input.ConnectorID, input.File)
	if err != nil {
		return nil, UploadOutput{}, fmt.Errorf("uploading %s: %w", input.File, err)
	}
	return nil, uploadOutput(record), nil
}

// handleHistory handles the upload_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("listing uploads: %w", err)
	}

	output := HistoryOutput{
		Uploads: make([]UploadOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Uploads[i] = uploadOutput(&records[i])
	}
	return nil, output, nil
}

func connectorOutput(c *domain.Connector) ConnectorOutput {
	return ConnectorOutput{
		ID:            c.ID,
		Label:         c.DisplayName(),
		SourceAPIName: c.SourceAPIName,
		ObjectAPIName: c.ObjectAPIName,
	}
}

func uploadOutput(r *domain.UploadRecord) UploadOutput {
	return UploadOutput{
		ID:            r.ID,
		Status:        string(r.Status),
		FileName:      r.FileName,
		ObjectAPIName: r.ObjectAPIName,
		Rows:          r.Rows,
		ErrorLocation: r.ErrorLocation,
		Error:         r.Error,
		StartedAt:     r.StartedAt,
	}
}
