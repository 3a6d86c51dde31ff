package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ingest resources.
	uriScheme = "ingest://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "connectors",
		Name:        "connectors",
		Description: "Connectors available for upload",
		MIMEType:    "application/json",
	}, s.handleConnectorsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "uploads/{uploadId}",
		Name:        "upload",
		Description: "One recorded upload attempt",
		MIMEType:    "application/json",
	}, s.handleUploadResource)
}

// handleConnectorsResource returns the connector snapshot.
// It never calls the remote API; an unloaded directory reads as empty.
func (s *Server) handleConnectorsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	connectors := s.ports.Directory.List()
	infos := make([]ConnectorOutput, len(connectors))
	for i := range connectors {
		infos[i] = connectorOutput(&connectors[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleUploadResource returns one upload record.
func (s *Server) handleUploadResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractUploadID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting upload: %w", err)
	}
	return jsonResource(req.Params.URI, record)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractUploadID extracts the upload ID from a URI like ingest://uploads/{uploadId}.
func extractUploadID(uri string) string {
	const prefix = uriScheme + "uploads/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
