package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// NewHTTPClient builds an HTTP client that authenticates per auth.Method.
// Tokens from the client credentials grant are cached and refreshed by oauth2.
func NewHTTPClient(ctx context.Context, auth domain.AuthSettings, timeout time.Duration) (*http.Client, error) {
	var client *http.Client

	switch auth.Method {
	case domain.AuthMethodNone, "":
		client = &http.Client{}
	case domain.AuthMethodToken:
		if auth.AccessToken == "" {
			return nil, fmt.Errorf("%w: access token is empty", domain.ErrInvalidInput)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: auth.AccessToken, TokenType: "Bearer"})
		client = oauth2.NewClient(ctx, ts)
	case domain.AuthMethodClientCredentials:
		if !auth.IsConfigured() {
			return nil, fmt.Errorf("%w: client credentials need token_url, client_id and client_secret",
				domain.ErrInvalidInput)
		}
		cfg := &clientcredentials.Config{
			ClientID:     auth.ClientID,
			ClientSecret: auth.ClientSecret,
			TokenURL:     auth.TokenURL,
			Scopes:       auth.Scopes,
		}
		client = cfg.Client(ctx)
	default:
		return nil, fmt.Errorf("%w: auth method %q", domain.ErrInvalidInput, auth.Method)
	}

	client.Timeout = timeout
	return client, nil
}
