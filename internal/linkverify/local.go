package linkverify

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BrokenLink is an internal link whose target is missing from the output tree.
type BrokenLink struct {
	Page string // page path relative to the site root
	URL  string
	Line int
}

// CheckInternalLinks verifies that every internal link on pages resolves to
// a file under root. Pages are slash-separated paths relative to root.
// Directory targets resolve to their index.html.
func CheckInternalLinks(root string, pages []string) ([]BrokenLink, error) {
	var broken []BrokenLink
	for _, page := range pages {
		links, err := ExtractLinks(filepath.Join(root, filepath.FromSlash(page)), "")
		if err != nil {
			return nil, err
		}
		for _, link := range FilterLinks(links, true, false) {
			if !ShouldVerifyLink(link) {
				continue
			}
			if !internalTargetExists(root, page, link.URL) {
				broken = append(broken, BrokenLink{Page: page, URL: link.URL, Line: link.Line})
			}
		}
	}
	return broken, nil
}

func internalTargetExists(root, page, linkURL string) bool {
	local, ok := localPath(page, linkURL)
	if !ok {
		return false
	}
	if local == "" {
		return true
	}
	target := filepath.Join(root, filepath.FromSlash(local))
	info, err := os.Stat(target)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(target, "index.html"))
		return err == nil
	}
	return true
}

// localPath maps a link on page to a slash path relative to the site root.
// An empty result means the link targets page itself (query or fragment only).
// ok is false when the link escapes the site root or cannot be parsed.
func localPath(page, linkURL string) (string, bool) {
	u, err := url.Parse(linkURL)
	if err != nil {
		return "", false
	}
	if u.Path == "" {
		return "", true
	}

	var p string
	if strings.HasPrefix(u.Path, "/") {
		p = strings.TrimPrefix(path.Clean(u.Path), "/")
		if p == "" {
			p = "."
		}
	} else {
		p = path.Join(path.Dir(page), u.Path)
	}
	if strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "index.html")
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return p, true
}
