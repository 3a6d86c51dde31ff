package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Endpoint, settings.Endpoint)
	assert.Equal(t, domain.AuthMethodNone, settings.Auth.Method)
	assert.Equal(t, 60, settings.Upload.RequestsPerMinute)
	assert.False(t, settings.Upload.QuoteAwareHeader)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("endpoint.base_url", "https://ingest.example.com")
	_ = store.Set("endpoint.timeout_seconds", int64(5))
	_ = store.Set("auth.method", "token")
	_ = store.Set("auth.access_token", "tok")
	_ = store.Set("upload.requests_per_minute", int64(0))
	_ = store.Set("upload.quote_aware_header", true)
	_ = store.Set("sources.github_token", "ghp_x")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, "https://ingest.example.com", settings.Endpoint.BaseURL)
	assert.Equal(t, 5, settings.Endpoint.TimeoutSeconds)
	assert.Equal(t, domain.AuthMethodToken, settings.Auth.Method)
	assert.Equal(t, "tok", settings.Auth.AccessToken)
	// An explicit zero disables pacing rather than falling back to the default.
	assert.Equal(t, 0, settings.Upload.RequestsPerMinute)
	assert.True(t, settings.Upload.QuoteAwareHeader)
	assert.Equal(t, "ghp_x", settings.Sources.GitHubToken)
}

func TestSettingsService_Get_InvalidAuthMethodReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("auth.method", "kerberos")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AuthMethodNone, settings.Auth.Method)
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Endpoint.BaseURL = "https://ingest.example.com"
	settings.Auth = domain.AuthSettings{
		Method:       domain.AuthMethodClientCredentials,
		TokenURL:     "https://login.example.com/token",
		ClientID:     "cid",
		ClientSecret: "secret",
		Scopes:       []string{"ingest"},
	}
	settings.Sources.GoogleDriveToken = "ya29"

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.Endpoint, got.Endpoint)
	assert.Equal(t, settings.Auth, got.Auth)
	assert.Equal(t, "ya29", got.Sources.GoogleDriveToken)
}

func TestSettingsService_Save_EmptySecretsPreserved(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("auth.access_token", "keep-me")
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Auth.Method = domain.AuthMethodToken
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "keep-me", store.GetString("auth.access_token"))
}

func TestSettingsService_SetEndpoint(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.SetEndpoint(domain.EndpointSettings{BaseURL: "https://ingest.example.com", SubmitPath: "/v2/ingest"})
	require.NoError(t, err)

	got, _ := service.Get()
	assert.Equal(t, "https://ingest.example.com", got.Endpoint.BaseURL)
	assert.Equal(t, "/v2/ingest", got.Endpoint.SubmitPath)
	assert.Equal(t, "/connectors", got.Endpoint.ConnectorsPath)
	assert.Equal(t, 30, got.Endpoint.TimeoutSeconds)
}

func TestSettingsService_SetEndpoint_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	for _, raw := range []string{"", "ingest.example.com", "ftp://x", "http://"} {
		err := service.SetEndpoint(domain.EndpointSettings{BaseURL: raw})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

func TestSettingsService_SetAuth(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetAuth(domain.AuthSettings{Method: domain.AuthMethodToken, AccessToken: "tok"}))
	assert.Equal(t, "tok", store.GetString("auth.access_token"))

	// Switching methods clears the previous secret.
	require.NoError(t, service.SetAuth(domain.AuthSettings{Method: domain.AuthMethodNone}))
	_, ok := store.Get("auth.access_token")
	assert.False(t, ok)

	got, _ := service.Get()
	assert.Equal(t, domain.AuthMethodNone, got.Auth.Method)
}

func TestSettingsService_SetAuth_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.SetAuth(domain.AuthSettings{Method: "magic"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetAuth(domain.AuthSettings{Method: domain.AuthMethodToken}), domain.ErrInvalidInput)
	assert.ErrorIs(t,
		service.SetAuth(domain.AuthSettings{Method: domain.AuthMethodClientCredentials, ClientID: "x"}),
		domain.ErrInvalidInput,
	)
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput, "no endpoint")

	_ = store.Set("endpoint.base_url", "https://ingest.example.com")
	assert.NoError(t, service.Validate())

	_ = store.Set("auth.method", "token")
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput, "token missing")

	_ = store.Set("auth.access_token", "tok")
	assert.NoError(t, service.Validate())

	_ = store.Set("upload.requests_per_minute", -1)
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
