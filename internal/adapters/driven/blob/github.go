package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// SchemeGitHub is the scheme for files in GitHub repositories.
const SchemeGitHub = "github"

// encodingNone is reported by the contents API for files over 1MB.
const encodingNone = "none"

// Ensure GitHubSource implements the interface.
var _ driven.BlobSource = (*GitHubSource)(nil)

// GitHubSource reads files through the GitHub contents API.
type GitHubSource struct {
	gh *gh.Client
}

// NewGitHubSource wraps an existing go-github client.
func NewGitHubSource(client *gh.Client) *GitHubSource {
	return &GitHubSource{gh: client}
}

// NewGitHubSourceFromToken creates a GitHub source. An empty token gives
// unauthenticated access, which only reaches public repositories.
func NewGitHubSourceFromToken(ctx context.Context, token string) *GitHubSource {
	if token == "" {
		return NewGitHubSource(gh.NewClient(nil))
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	return NewGitHubSource(gh.NewClient(tc))
}

// Scheme returns "github".
func (s *GitHubSource) Scheme() string {
	return SchemeGitHub
}

// GitHubRef identifies one file in a repository.
type GitHubRef struct {
	Owner string
	Repo  string
	Path  string
	// Ref is a branch, tag or commit; empty means the default branch.
	Ref string
}

// ParseGitHubRef parses github://owner/repo/path[@ref].
func ParseGitHubRef(ref string) (GitHubRef, error) {
	rest := trimScheme(ref, SchemeGitHub)

	var out GitHubRef
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		out.Ref = rest[at+1:]
		rest = rest[:at]
	}

	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return GitHubRef{}, fmt.Errorf("%w: github reference %q, want github://owner/repo/path[@ref]",
			domain.ErrInvalidInput, ref)
	}
	out.Owner, out.Repo, out.Path = parts[0], parts[1], parts[2]
	return out, nil
}

// Open reads github://owner/repo/path[@ref].
func (s *GitHubSource) Open(ctx context.Context, ref string) (*domain.Blob, error) {
	target, err := ParseGitHubRef(ref)
	if err != nil {
		return nil, err
	}

	opts := &gh.RepositoryContentGetOptions{Ref: target.Ref}
	file, dir, _, err := s.gh.Repositories.GetContents(ctx, target.Owner, target.Repo, target.Path, opts)
	if err != nil {
		return nil, wrapGitHubError(err, "get contents "+target.Path)
	}
	if file == nil || dir != nil {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, target.Path)
	}
	if int64(file.GetSize()) > MaxBlobSize {
		return nil, tooLarge(target.Path, int64(file.GetSize()))
	}

	var data []byte
	if file.GetEncoding() == encodingNone {
		// Contents over 1MB are not inlined; fetch the git blob instead.
		data, _, err = s.gh.Git.GetBlobRaw(ctx, target.Owner, target.Repo, file.GetSHA())
		if err != nil {
			return nil, wrapGitHubError(err, "get blob "+target.Path)
		}
	} else {
		content, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", target.Path, err)
		}
		data = []byte(content)
	}

	name := file.GetName()
	if name == "" {
		name = path.Base(target.Path)
	}
	logger.Debug("fetched %s/%s/%s from github (%d bytes)", target.Owner, target.Repo, target.Path, len(data))
	return &domain.Blob{Name: name, MIMEType: detectMIME(name, data), Data: data}, nil
}

// wrapGitHubError maps GitHub API errors onto domain errors.
func wrapGitHubError(err error, op string) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: github denied access (%d): %w", op, ghErr.Response.StatusCode, err)
		}
	}
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: github rate limit resets at %s: %w", op, rateErr.Rate.Reset.Time, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
