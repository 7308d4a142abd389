package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
)

// BaseForge provides common HTTP operations for forge clients.
type BaseForge struct {
	httpClient *http.Client
	apiURL     string
	token      string

	authHeaderPrefix string
	customHeaders    map[string]string
}

// NewBaseForge creates a BaseForge. An empty token sends unauthenticated requests.
func NewBaseForge(httpClient *http.Client, apiURL, token string) *BaseForge {
	return &BaseForge{
		httpClient:       httpClient,
		apiURL:           apiURL,
		token:            token,
		authHeaderPrefix: "Bearer ",
		customHeaders:    make(map[string]string),
	}
}

// SetCustomHeader sets forge-specific headers (e.g., GitHub API version).
func (b *BaseForge) SetCustomHeader(key, value string) {
	b.customHeaders[key] = value
}

// NewRequest builds a GET-style request for an endpoint relative to the API
// URL. Query strings in endpoint are preserved.
func (b *BaseForge) NewRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	cleanEndpoint := strings.TrimPrefix(endpoint, "/")

	var rawQuery string
	if idx := strings.Index(cleanEndpoint, "?"); idx != -1 {
		rawQuery = cleanEndpoint[idx+1:]
		cleanEndpoint = cleanEndpoint[:idx]
	}

	u, err := url.Parse(b.apiURL)
	if err != nil {
		return nil, errors.ConfigError("failed to parse API URL").
			WithCause(err).
			WithContext("api_url", b.apiURL).
			Build()
	}

	basePath := strings.TrimSuffix(u.Path, "/")
	u.Path = path.Join("/", basePath, cleanEndpoint)
	if rawQuery != "" {
		u.RawQuery = rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), http.NoBody)
	if err != nil {
		return nil, errors.ForgeError("failed to create request").
			WithCause(err).
			WithContext("method", method).
			WithContext("url", u.String()).
			Build()
	}

	if b.token != "" {
		req.Header.Set("Authorization", b.authHeaderPrefix+b.token)
	}
	req.Header.Set("User-Agent", "wheelindex/1.0")
	for key, value := range b.customHeaders {
		req.Header.Set(key, value)
	}

	return req, nil
}

// DoRequest executes an HTTP request and decodes the JSON response into result.
// Any non-2xx status is returned as a classified error.
func (b *BaseForge) DoRequest(req *http.Request, result any) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("failed to execute forge request").
			WithCause(err).
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		limitedBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := strings.ReplaceAll(string(limitedBody), "\n", " ")

		category := errors.CategoryForge
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			category = errors.CategoryAuth
		case http.StatusNotFound:
			category = errors.CategoryNotFound
		}

		return errors.NewError(category, fmt.Sprintf("forge API error: %s", resp.Status)).
			Fatal().
			WithContext("code", resp.StatusCode).
			WithContext("url", req.URL.String()).
			WithContext("response", bodyStr).
			Build()
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return errors.ForgeError("failed to decode response").
				WithCause(err).
				WithContext("url", req.URL.String()).
				Build()
		}
	}

	return nil
}
