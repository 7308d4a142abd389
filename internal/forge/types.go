package forge

import "context"

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
	CreatedAt          string `json:"created_at"`
}

// Release is a published release and its assets.
type Release struct {
	TagName     string  `json:"tag_name"`
	Name        string  `json:"name"`
	Draft       bool    `json:"draft"`
	Prerelease  bool    `json:"prerelease"`
	PublishedAt string  `json:"published_at"`
	Assets      []Asset `json:"assets"`
}

// ReleaseDate returns the YYYY-MM-DD prefix of PublishedAt (empty when the
// release was never published).
func (r Release) ReleaseDate() string {
	if len(r.PublishedAt) < 10 {
		return r.PublishedAt
	}
	return r.PublishedAt[:10]
}

// ReleaseLister lists the releases of a repository.
type ReleaseLister interface {
	ListReleases(ctx context.Context, owner, repo string) ([]Release, error)
}
