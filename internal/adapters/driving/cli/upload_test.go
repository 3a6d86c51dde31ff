package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

func decodePayload(t *testing.T, encoded string) string {
	t.Helper()
	unescaped, err := url.PathUnescape(encoded)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(unescaped)
	require.NoError(t, err)
	return string(raw)
}

func TestUploadCmd_Success(t *testing.T) {
	env := setupTestServices(t)
	path := writeCSV(t, "First Name, Last Name\nAda ,Lovelace\n")

	out, err := execute(t, "upload", path, "--connector", "0Xk1")

	require.NoError(t, err)
	assert.Contains(t, out, "File:   leads.csv (2 rows")
	assert.Contains(t, out, "Object: Lead__dlm via leads_src")
	assert.Contains(t, out, "Status: succeeded")
	assert.Contains(t, env.notices.String(), "Upload complete")

	require.Len(t, env.api.requests, 1)
	req := env.api.requests[0]
	assert.Equal(t, "leads_src", req.SourceAPIName)
	assert.Equal(t, "Lead__dlm", req.ObjectAPIName)
	assert.Equal(t, "FirstName,LastName\nAda ,Lovelace", decodePayload(t, req.EncodedCSVData))

	records, err := env.history.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.UploadSucceeded, records[0].Status)
}

func TestUploadCmd_ByLabelJSON(t *testing.T) {
	env := setupTestServices(t)
	path := writeCSV(t, "a,b\n1,2\n")

	out, err := execute(t, "upload", path, "-c", "contacts", "--json")

	require.NoError(t, err)
	var record domain.UploadRecord
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "0Xk2", record.ConnectorID)
	assert.Equal(t, domain.UploadSucceeded, record.Status)
	assert.Equal(t, "Contact__dlm", env.api.requests[0].ObjectAPIName)
}

func TestUploadCmd_LogicalFailure(t *testing.T) {
	env := setupTestServices(t)
	env.api.SubmitIngestionFunc = func(context.Context, domain.IngestionRequest) (*domain.IngestionResponse, error) {
		return &domain.IngestionResponse{Success: false, ErrorLocation: "Row 4"}, nil
	}
	path := writeCSV(t, "a,b\n1,2\n")

	out, err := execute(t, "upload", path, "-c", "0Xk1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error location Row 4")
	assert.Contains(t, out, "Status: failed")
	assert.Contains(t, env.notices.String(), "Error location: Row 4")
}

func TestUploadCmd_TransportError(t *testing.T) {
	env := setupTestServices(t)
	env.api.SubmitIngestionFunc = func(context.Context, domain.IngestionRequest) (*domain.IngestionResponse, error) {
		return nil, domain.ErrTransport
	}
	path := writeCSV(t, "a,b\n")

	out, err := execute(t, "upload", path, "-c", "0Xk1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, out, "Status: error")
	assert.Contains(t, env.notices.String(), "Upload failed")
}

func TestUploadCmd_EmptyFile(t *testing.T) {
	env := setupTestServices(t)
	path := writeCSV(t, "")

	_, err := execute(t, "upload", path, "-c", "0Xk1")

	assert.ErrorIs(t, err, domain.ErrEmptyFile)
	assert.Empty(t, env.api.requests)
}

func TestUploadCmd_MissingFile(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "upload", filepath.Join(t.TempDir(), "nope.csv"), "-c", "0Xk1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.api.requests)
}

func TestUploadCmd_UnknownConnector(t *testing.T) {
	env := setupTestServices(t)
	path := writeCSV(t, "a,b\n")

	_, err := execute(t, "upload", path, "-c", "Orders")

	assert.ErrorIs(t, err, domain.ErrLookup)
	assert.Empty(t, env.api.requests)
}

func TestUploadCmd_RequiresConnectorFlag(t *testing.T) {
	setupTestServices(t)
	f := uploadCmd.Flags().Lookup("connector")
	require.NotNil(t, f)
	assert.Equal(t, []string{"true"}, f.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestUploadCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "upload", "x.csv", "-c", "0Xk1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload service not configured")
}
