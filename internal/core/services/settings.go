package services

import (
	"fmt"
	"net/url"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEndpointBaseURL    = "endpoint.base_url"
	keyEndpointConnectors = "endpoint.connectors_path"
	keyEndpointSubmit     = "endpoint.submit_path"
	keyEndpointTimeout    = "endpoint.timeout_seconds"
	keyAuthMethod         = "auth.method"
	keyAuthAccessToken    = "auth.access_token"
	keyAuthTokenURL       = "auth.token_url"
	keyAuthClientID       = "auth.client_id"
	keyAuthClientSecret   = "auth.client_secret"
	keyAuthScopes         = "auth.scopes"
	keyUploadRPM          = "upload.requests_per_minute"
	keyUploadQuoteAware   = "upload.quote_aware_header"
	keySourcesGDrive      = "sources.gdrive_token"
	keySourcesGitHub      = "sources.github_token"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Endpoint: domain.EndpointSettings{
			BaseURL:        s.configStore.GetString(keyEndpointBaseURL),
			ConnectorsPath: s.getString(keyEndpointConnectors, defaults.Endpoint.ConnectorsPath),
			SubmitPath:     s.getString(keyEndpointSubmit, defaults.Endpoint.SubmitPath),
			TimeoutSeconds: s.getInt(keyEndpointTimeout, defaults.Endpoint.TimeoutSeconds),
		},
		Auth: domain.AuthSettings{
			Method:       s.getAuthMethod(defaults.Auth.Method),
			AccessToken:  s.configStore.GetString(keyAuthAccessToken),
			TokenURL:     s.configStore.GetString(keyAuthTokenURL),
			ClientID:     s.configStore.GetString(keyAuthClientID),
			ClientSecret: s.configStore.GetString(keyAuthClientSecret),
			Scopes:       s.configStore.GetStringSlice(keyAuthScopes),
		},
		Upload: domain.UploadSettings{
			RequestsPerMinute: s.getInt(keyUploadRPM, defaults.Upload.RequestsPerMinute),
			QuoteAwareHeader:  s.getBool(keyUploadQuoteAware, defaults.Upload.QuoteAwareHeader),
		},
		Sources: domain.SourceSettings{
			GoogleDriveToken: s.configStore.GetString(keySourcesGDrive),
			GitHubToken:      s.configStore.GetString(keySourcesGitHub),
		},
	}

	return settings, nil
}

// Save persists application settings.
// Empty secrets are left untouched so a partial save never wipes them.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyEndpointBaseURL, settings.Endpoint.BaseURL},
		{keyEndpointConnectors, settings.Endpoint.ConnectorsPath},
		{keyEndpointSubmit, settings.Endpoint.SubmitPath},
		{keyEndpointTimeout, settings.Endpoint.TimeoutSeconds},
		{keyAuthMethod, settings.Auth.Method.String()},
		{keyAuthTokenURL, settings.Auth.TokenURL},
		{keyAuthClientID, settings.Auth.ClientID},
		{keyUploadRPM, settings.Upload.RequestsPerMinute},
		{keyUploadQuoteAware, settings.Upload.QuoteAwareHeader},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Auth.Scopes != nil {
		if err := s.configStore.Set(keyAuthScopes, settings.Auth.Scopes); err != nil {
			return fmt.Errorf("save %s: %w", keyAuthScopes, err)
		}
	}

	secrets := []struct {
		key   string
		value string
	}{
		{keyAuthAccessToken, settings.Auth.AccessToken},
		{keyAuthClientSecret, settings.Auth.ClientSecret},
		{keySourcesGDrive, settings.Sources.GoogleDriveToken},
		{keySourcesGitHub, settings.Sources.GitHubToken},
	}
	for _, v := range secrets {
		if v.value == "" {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// SetEndpoint updates the ingestion API location.
func (s *SettingsService) SetEndpoint(endpoint domain.EndpointSettings) error {
	if err := validateBaseURL(endpoint.BaseURL); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Endpoint.BaseURL = endpoint.BaseURL
	if endpoint.ConnectorsPath != "" {
		settings.Endpoint.ConnectorsPath = endpoint.ConnectorsPath
	}
	if endpoint.SubmitPath != "" {
		settings.Endpoint.SubmitPath = endpoint.SubmitPath
	}
	if endpoint.TimeoutSeconds > 0 {
		settings.Endpoint.TimeoutSeconds = endpoint.TimeoutSeconds
	}

	return s.Save(settings)
}

// SetAuth updates the ingestion API credentials.
// Switching methods clears the secrets of the previous method.
func (s *SettingsService) SetAuth(auth domain.AuthSettings) error {
	if !auth.Method.IsValid() {
		return fmt.Errorf("%w: auth method %q", domain.ErrInvalidInput, auth.Method)
	}
	if !auth.IsConfigured() {
		return fmt.Errorf("%w: auth method %s is missing required fields", domain.ErrInvalidInput, auth.Method)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if auth.Method != domain.AuthMethodToken {
		if err := s.configStore.Delete(keyAuthAccessToken); err != nil {
			return fmt.Errorf("clear %s: %w", keyAuthAccessToken, err)
		}
	}
	if auth.Method != domain.AuthMethodClientCredentials {
		if err := s.configStore.Delete(keyAuthClientSecret); err != nil {
			return fmt.Errorf("clear %s: %w", keyAuthClientSecret, err)
		}
	}

	settings.Auth = auth
	return s.Save(settings)
}

// Validate checks the current settings are usable for uploads.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Endpoint.IsConfigured() {
		return fmt.Errorf("%w: endpoint base URL is not set (run 'ingest config endpoint')", domain.ErrInvalidInput)
	}
	if err := validateBaseURL(settings.Endpoint.BaseURL); err != nil {
		return err
	}
	if !settings.Auth.Method.IsValid() {
		return fmt.Errorf("%w: auth method %q", domain.ErrInvalidInput, settings.Auth.Method)
	}
	if !settings.Auth.IsConfigured() {
		return fmt.Errorf(
			"%w: auth method %q is missing required fields",
			domain.ErrInvalidInput,
			settings.Auth.Method.Description(),
		)
	}
	if settings.Upload.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: requests_per_minute must not be negative", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", domain.ErrInvalidInput, raw)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getAuthMethod(defaultVal domain.AuthMethod) domain.AuthMethod {
	val := s.configStore.GetString(keyAuthMethod)
	if val == "" {
		return defaultVal
	}
	method := domain.AuthMethod(val)
	if !method.IsValid() {
		return defaultVal
	}
	return method
}
