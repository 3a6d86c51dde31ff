package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

func TestConfigShowCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: https://ingest.example.com")
	assert.Contains(t, out, "Requests per minute:")
	assert.Contains(t, out, "Google Drive token: (not set)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestConfigEndpointCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "config", "endpoint", "https://api.example.com/",
		"--connectors-path", "/v2/connectors", "--timeout", "9")

	require.NoError(t, err)
	assert.Contains(t, out, "Endpoint set to https://api.example.com")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", settings.Endpoint.BaseURL)
	assert.Equal(t, "/v2/connectors", settings.Endpoint.ConnectorsPath)
	assert.Equal(t, 9, settings.Endpoint.TimeoutSeconds)
}

func TestConfigEndpointCmd_Invalid(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "config", "endpoint", "not-a-url")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigAuthCmd_Token(t *testing.T) {
	env := setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("2\nsecret-token-123\n"))

	out, err := execute(t, "config", "auth")

	require.NoError(t, err)
	assert.Contains(t, out, "Select authentication method:")
	assert.Contains(t, out, "Authentication set to: Static bearer token")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AuthMethodToken, settings.Auth.Method)
	assert.Equal(t, "secret-token-123", settings.Auth.AccessToken)
}

func TestConfigAuthCmd_ClientCredentials(t *testing.T) {
	env := setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("3\nhttps://auth.example.com/token\ncid\ncsecret\napi.read api.write\n"))

	_, err := execute(t, "config", "auth")

	require.NoError(t, err)
	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AuthMethodClientCredentials, settings.Auth.Method)
	assert.Equal(t, "cid", settings.Auth.ClientID)
	assert.Equal(t, "csecret", settings.Auth.ClientSecret)
	assert.Equal(t, []string{"api.read", "api.write"}, settings.Auth.Scopes)
}

func TestConfigAuthCmd_MissingToken(t *testing.T) {
	setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("2\n\n"))

	_, err := execute(t, "config", "auth")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSourcesCmd_BlankKeepsTokens(t *testing.T) {
	env := setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("drive-token-abcdef\nghp_first_token\n"))
	_, err := execute(t, "config", "sources")
	require.NoError(t, err)

	rootCmd.SetIn(strings.NewReader("\nghp_second_token\n"))
	out, err := execute(t, "config", "sources")
	require.NoError(t, err)
	assert.Contains(t, out, "driv...cdef")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "drive-token-abcdef", settings.Sources.GoogleDriveToken)
	assert.Equal(t, "ghp_second_token", settings.Sources.GitHubToken)
}

func TestConfigUploadCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "config", "upload", "--rpm", "30", "--quote-aware-header")

	require.NoError(t, err)
	assert.Contains(t, out, "Requests per minute: 30")
	assert.Contains(t, out, "Quote-aware header: true")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 30, settings.Upload.RequestsPerMinute)
	assert.True(t, settings.Upload.QuoteAwareHeader)
}

func TestConfigUploadCmd_NegativeRPM(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "config", "upload", "--rpm=-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 1},
		{"2", 2},
		{"3", 3},
		{"0", 1},
		{"9", 1},
		{"abc", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseChoice(tt.input, 3, 1), tt.input)
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", maskSecret(""))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "abcd...wxyz", maskSecret("abcdefghijklmnopqrstuvwxyz"))
}

func TestFormatRPM(t *testing.T) {
	assert.Equal(t, "unlimited", formatRPM(0))
	assert.Equal(t, "60", formatRPM(60))
}
