package publish

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v32/github"
	"golang.org/x/oauth2"
)

// GitHub publishes releases through the GitHub REST API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// Compile-time check that GitHub implements Publisher.
var _ Publisher = (*GitHub)(nil)

// GitHubOption configures a GitHub publisher.
type GitHubOption func(*githubOptions)

type githubOptions struct {
	baseURL   string
	uploadURL string
	http      *http.Client
}

// WithBaseURL points the client at another API host, such as GitHub
// Enterprise or a test server. uploadURL defaults to baseURL.
func WithBaseURL(baseURL, uploadURL string) GitHubOption {
	return func(o *githubOptions) {
		o.baseURL = baseURL
		o.uploadURL = uploadURL
	}
}

// WithHTTPClient sets the transport used underneath the token source.
func WithHTTPClient(c *http.Client) GitHubOption {
	return func(o *githubOptions) { o.http = c }
}

// ParseRepository splits "owner/name".
func ParseRepository(ref string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(ref, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, ref)
	}
	return owner, name, nil
}

// NewGitHub creates a publisher for repository ("owner/name") that
// authenticates with token.
func NewGitHub(ctx context.Context, repository, token string, opts ...GitHubOption) (*GitHub, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	owner, name, err := ParseRepository(repository)
	if err != nil {
		return nil, err
	}

	var o githubOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.http != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.http)
	}
	client := github.NewClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})))

	if o.baseURL != "" {
		if o.uploadURL == "" {
			o.uploadURL = o.baseURL
		}
		if client.BaseURL, err = endpoint(o.baseURL); err != nil {
			return nil, err
		}
		if client.UploadURL, err = endpoint(o.uploadURL); err != nil {
			return nil, err
		}
	}
	return &GitHub{client: client, owner: owner, repo: name}, nil
}

func endpoint(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing API URL %q: %w", raw, err)
	}
	return u, nil
}

// CreateDraftRelease creates a draft release for tag.
func (g *GitHub) CreateDraftRelease(ctx context.Context, tag, title, notes string) (Release, error) {
	rel, _, err := g.client.Repositories.CreateRelease(ctx, g.owner, g.repo, &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(title),
		Body:    github.String(notes),
		Draft:   github.Bool(true),
	})
	if err != nil {
		return Release{}, fmt.Errorf("creating release %s on %s/%s: %w", tag, g.owner, g.repo, err)
	}
	return Release{ID: rel.GetID(), Tag: rel.GetTagName(), HTMLURL: rel.GetHTMLURL()}, nil
}

// UploadAsset uploads path as a release asset.
func (g *GitHub) UploadAsset(ctx context.Context, rel Release, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)
	_, _, err = g.client.Repositories.UploadReleaseAsset(ctx, g.owner, g.repo, rel.ID, &github.UploadOptions{
		Name:      name,
		MediaType: mediaType(name),
	}, f)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}

func mediaType(name string) string {
	switch {
	case strings.HasSuffix(name, ".tar.xz"):
		return "application/x-xz"
	case strings.HasSuffix(name, ".sig"):
		return "application/pgp-signature"
	case strings.HasSuffix(name, ".sha256"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
