package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultGitHubAPIURL is the public GitHub REST endpoint.
const DefaultGitHubAPIURL = "https://api.github.com"

// GitHubClient reads releases from the GitHub REST API.
type GitHubClient struct {
	*BaseForge
}

// NewGitHubClient creates a GitHub client. token may be empty for public repositories.
func NewGitHubClient(httpClient *http.Client, apiURL, token string) *GitHubClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if apiURL == "" {
		apiURL = DefaultGitHubAPIURL
	}
	base := NewBaseForge(httpClient, apiURL, token)
	base.SetCustomHeader("Accept", "application/vnd.github+json")
	base.SetCustomHeader("X-GitHub-Api-Version", "2022-11-28")
	return &GitHubClient{BaseForge: base}
}

// ListReleases fetches the repository's releases with a single request.
func (c *GitHubClient) ListReleases(ctx context.Context, owner, repo string) ([]Release, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/releases?per_page=100", url.PathEscape(owner), url.PathEscape(repo))
	req, err := c.NewRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}

	var releases []Release
	if err := c.DoRequest(req, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}
