// Package registry lists container image tags from the Docker Hub v2 API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
	"git.home.luguber.info/inful/wheelindex/internal/logfields"
)

// Tag is one entry of a tag listing page.
type Tag struct {
	Name        string `json:"name"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// TagLister returns every tag whose name contains filter, in listing order.
type TagLister interface {
	ListTags(ctx context.Context, filter string) ([]Tag, error)
}

// tagPage mirrors one page of the Docker Hub response.
type tagPage struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []Tag   `json:"results"`
}

// Client implements TagLister against a Docker Hub compatible endpoint.
type Client struct {
	httpClient *http.Client
	tagsURL    string
	pageSize   int
	userAgent  string
}

// NewClient creates a tag client for the repository tags URL, e.g.
// https://hub.docker.com/v2/repositories/nvidia/cuda/tags/.
func NewClient(httpClient *http.Client, tagsURL string, pageSize int) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		httpClient: httpClient,
		tagsURL:    tagsURL,
		pageSize:   pageSize,
		userAgent:  "wheelindex/1.0",
	}
}

// ListTags follows the next cursor until the registry reports no further page.
func (c *Client) ListTags(ctx context.Context, filter string) ([]Tag, error) {
	first, err := c.firstPageURL(filter)
	if err != nil {
		return nil, err
	}

	var tags []Tag
	seen := make(map[string]struct{})
	next := first
	for next != "" {
		if _, dup := seen[next]; dup {
			return nil, errors.RegistryError("tag pagination loops").
				WithContext("url", next).
				Build()
		}
		seen[next] = struct{}{}

		page, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		tags = append(tags, page.Results...)
		slog.Debug("Fetched tag page",
			logfields.URL(next),
			logfields.Count(len(page.Results)))

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}
	return tags, nil
}

func (c *Client) firstPageURL(filter string) (string, error) {
	u, err := url.Parse(c.tagsURL)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "failed to parse registry URL").
			Fatal().
			WithContext("url", c.tagsURL).
			Build()
	}
	q := u.Query()
	q.Set("page_size", strconv.Itoa(c.pageSize))
	if filter != "" {
		q.Set("name", filter)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*tagPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRegistry, "failed to create request").
			Fatal().
			WithContext("url", pageURL).
			Build()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkError("failed to execute registry request").
			WithCause(err).
			WithContext("url", pageURL).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		limitedBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := strings.ReplaceAll(string(limitedBody), "\n", " ")

		category := errors.CategoryRegistry
		if resp.StatusCode == http.StatusNotFound {
			category = errors.CategoryNotFound
		}
		return nil, errors.NewError(category, fmt.Sprintf("registry API error: %s", resp.Status)).
			Fatal().
			WithContext("code", resp.StatusCode).
			WithContext("url", pageURL).
			WithContext("response", bodyStr).
			Build()
	}

	var page tagPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, errors.RegistryError("failed to decode tag page").
			WithCause(err).
			WithContext("url", pageURL).
			Build()
	}
	return &page, nil
}
