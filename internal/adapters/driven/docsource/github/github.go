// Package github loads documents from GitHub repositories using
// github://owner/repo/path[@ref] locations.
package github

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

const (
	// scheme prefixes every location this source handles.
	scheme = "github://"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source loads a single file from a GitHub repository. A token is
// optional; public repositories work without one.
type Source struct {
	client *gh.Client
}

// NewSource creates a GitHub document source. token may be empty.
func NewSource(token string) *Source {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = DefaultTimeout

	return &Source{client: gh.NewClient(hc)}
}

// Name returns the source name for logging.
func (s *Source) Name() string {
	return "github"
}

// CanLoad reports whether the location uses the github:// scheme.
func (s *Source) CanLoad(source string) bool {
	return strings.HasPrefix(source, scheme)
}

// Load fetches the file content via the GitHub contents API.
func (s *Source) Load(ctx context.Context, source string) (*domain.Document, error) {
	loc, err := parseLocation(source)
	if err != nil {
		return nil, err
	}

	opts := &gh.RepositoryContentGetOptions{Ref: loc.ref}
	content, _, _, err := s.client.Repositories.GetContents(ctx, loc.owner, loc.repo, loc.path, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %q: %w", domain.ErrInvalidInput, source, err)
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %q is a directory, not a file", domain.ErrInvalidInput, source)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %q: %w", domain.ErrInvalidInput, source, err)
	}

	metadata := map[string]any{
		"loader": s.Name(),
		"owner":  loc.owner,
		"repo":   loc.repo,
		"path":   loc.path,
	}
	if loc.ref != "" {
		metadata["ref"] = loc.ref
	}

	return &domain.Document{
		ID:       uuid.NewString(),
		Source:   source,
		Title:    path.Base(loc.path),
		Content:  decoded,
		RawChars: len([]rune(decoded)),
		Metadata: metadata,
		LoadedAt: time.Now().UTC(),
	}, nil
}

// location is a parsed github:// URI.
type location struct {
	owner string
	repo  string
	path  string
	ref   string
}

// parseLocation splits github://owner/repo/path[@ref] into its parts.
func parseLocation(source string) (location, error) {
	rest := strings.TrimPrefix(source, scheme)

	var loc location
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		loc.ref = rest[at+1:]
		rest = rest[:at]
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return location{}, fmt.Errorf("%w: expected github://owner/repo/path[@ref], got %q",
			domain.ErrInvalidInput, source)
	}

	loc.owner = parts[0]
	loc.repo = parts[1]
	loc.path = parts[2]
	return loc, nil
}
