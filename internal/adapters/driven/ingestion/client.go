package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.ConnectorSource = (*Client)(nil)
	_ driven.IngestionClient = (*Client)(nil)
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// Config locates the ingestion API.
type Config struct {
	BaseURL           string
	ConnectorsPath    string
	SubmitPath        string
	Timeout           time.Duration
	RequestsPerMinute int
}

// ConfigFromSettings derives a client config from application settings.
func ConfigFromSettings(s domain.AppSettings) Config {
	timeout := time.Duration(s.Endpoint.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Config{
		BaseURL:           s.Endpoint.BaseURL,
		ConnectorsPath:    s.Endpoint.ConnectorsPath,
		SubmitPath:        s.Endpoint.SubmitPath,
		Timeout:           timeout,
		RequestsPerMinute: s.Upload.RequestsPerMinute,
	}
}

// Client talks to the remote ingestion API over JSON/HTTP.
type Client struct {
	connectorsURL string
	submitURL     string
	http          *http.Client
	rateLimiter   *RateLimiter
}

// NewClient creates a client. httpClient carries authentication;
// nil uses an unauthenticated client with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		connectorsURL: base.JoinPath(cfg.ConnectorsPath).String(),
		submitURL:     base.JoinPath(cfg.SubmitPath).String(),
		http:          httpClient,
		rateLimiter:   NewRateLimiter(cfg.RequestsPerMinute),
	}, nil
}

// NewFromSettings builds an authenticated client from application settings.
func NewFromSettings(ctx context.Context, settings domain.AppSettings) (*Client, error) {
	cfg := ConfigFromSettings(settings)
	httpClient, err := NewHTTPClient(ctx, settings.Auth, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return NewClient(cfg, httpClient)
}

// connectorWire is one entry of the connector list response.
type connectorWire struct {
	ID            string `json:"Id"`
	Label         string `json:"Label"`
	SourceAPIName string `json:"Source_API_Name__c"`
	ObjectAPIName string `json:"Object_API_Name__c"`
}

// ListConnectors fetches the connector directory.
// Entries without an Id cannot be selected and are dropped.
func (c *Client) ListConnectors(ctx context.Context) ([]domain.Connector, error) {
	var wire []connectorWire
	if err := c.do(ctx, http.MethodGet, c.connectorsURL, nil, &wire); err != nil {
		return nil, err
	}

	connectors := make([]domain.Connector, 0, len(wire))
	for _, w := range wire {
		if w.ID == "" {
			logger.Warn("connector %q has no Id, skipping", w.Label)
			continue
		}
		connectors = append(connectors, domain.Connector{
			ID:            w.ID,
			Label:         w.Label,
			SourceAPIName: w.SourceAPIName,
			ObjectAPIName: w.ObjectAPIName,
		})
	}
	logger.Debug("fetched %d connectors from %s", len(connectors), c.connectorsURL)
	return connectors, nil
}

// SubmitIngestion posts one ingestion request. It never retries.
func (c *Client) SubmitIngestion(ctx context.Context, req domain.IngestionRequest) (*domain.IngestionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", domain.ErrInvalidInput, err)
	}

	var wire submitResponse
	if err := c.do(ctx, http.MethodPost, c.submitURL, body, &wire); err != nil {
		return nil, err
	}
	if wire.Success == nil {
		return nil, transportError("decode response", errMissingSuccess)
	}

	resp := domain.IngestionResponse{Success: *wire.Success, ErrorLocation: wire.ErrorLocation}
	logger.Debug("ingestion response: success=%t errorLocation=%q", resp.Success, resp.ErrorLocation)
	return &resp, nil
}

// submitResponse is the wire shape of a submit reply. A body without
// "success" (including null) is malformed, not a rejection.
type submitResponse struct {
	Success       *bool  `json:"success"`
	ErrorLocation string `json:"errorLocation"`
}

var errMissingSuccess = errors.New(`missing "success" field`)

// do performs a paced JSON request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return transportError("build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s", method, target)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return transportError(method+" "+target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
			URL:        target,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportError("decode response", err)
	}
	return nil
}
