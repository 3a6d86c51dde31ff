package domain

import "strings"

const unknownDescription = "Unknown"

// AuthMethod defines how the ingestion endpoint is authenticated.
type AuthMethod string

// Available auth methods.
const (
	// AuthMethodNone sends requests without credentials.
	AuthMethodNone AuthMethod = "none"

	// AuthMethodToken sends a static bearer token.
	AuthMethodToken AuthMethod = "token"

	// AuthMethodClientCredentials uses the OAuth 2.0 client credentials grant.
	AuthMethodClientCredentials AuthMethod = "client_credentials"
)

// IsValid returns true if the auth method is recognised.
func (m AuthMethod) IsValid() bool {
	switch m {
	case AuthMethodNone, AuthMethodToken, AuthMethodClientCredentials:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m AuthMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m AuthMethod) Description() string {
	switch m {
	case AuthMethodNone:
		return "None (unauthenticated endpoint)"
	case AuthMethodToken:
		return "Static bearer token"
	case AuthMethodClientCredentials:
		return "OAuth 2.0 client credentials"
	default:
		return unknownDescription
	}
}

// EndpointSettings locates the remote ingestion API.
type EndpointSettings struct {
	// BaseURL is the scheme and host of the ingestion API.
	BaseURL string
	// ConnectorsPath is the path that lists connectors.
	ConnectorsPath string
	// SubmitPath is the path that accepts ingestion requests.
	SubmitPath string
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int
}

// IsConfigured returns true if a base URL is set.
func (e EndpointSettings) IsConfigured() bool {
	return strings.TrimSpace(e.BaseURL) != ""
}

// AuthSettings holds credentials for the ingestion API.
type AuthSettings struct {
	Method       AuthMethod
	AccessToken  string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// IsConfigured returns true if the fields required by Method are present.
func (a AuthSettings) IsConfigured() bool {
	switch a.Method {
	case AuthMethodNone:
		return true
	case AuthMethodToken:
		return a.AccessToken != ""
	case AuthMethodClientCredentials:
		return a.TokenURL != "" && a.ClientID != "" && a.ClientSecret != ""
	default:
		return false
	}
}

// UploadSettings tunes the upload pipeline.
type UploadSettings struct {
	// RequestsPerMinute paces submissions. Zero disables pacing.
	RequestsPerMinute int
	// QuoteAwareHeader splits the header row with CSV quoting rules
	// instead of a plain comma split.
	QuoteAwareHeader bool
}

// SourceSettings holds tokens for remote file sources.
type SourceSettings struct {
	GoogleDriveToken string
	GitHubToken      string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Endpoint EndpointSettings
	Auth     AuthSettings
	Upload   UploadSettings
	Sources  SourceSettings
}

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Endpoint: EndpointSettings{
			ConnectorsPath: "/connectors",
			SubmitPath:     "/ingest",
			TimeoutSeconds: 30,
		},
		Auth: AuthSettings{
			Method: AuthMethodNone,
		},
		Upload: UploadSettings{
			RequestsPerMinute: 60,
		},
	}
}

// AllAuthMethods returns all supported auth methods.
func AllAuthMethods() []AuthMethod {
	return []AuthMethod{
		AuthMethodNone,
		AuthMethodToken,
		AuthMethodClientCredentials,
	}
}
