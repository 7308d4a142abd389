package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL        string // The URL or path
	Text       string // Link text/title
	Tag        string // HTML tag (a, img, script, link, etc.)
	Attribute  string // Attribute containing the link (href, src, etc.)
	IsInternal bool   // True if link is internal to the site
	Line       int    // Approximate line number in HTML
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string, baseURL string) ([]*Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithSeverity(errors.SeverityError).WithContext("html_path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return ExtractLinksFromReader(file, baseURL)
}

// ExtractLinksFromReader extracts all links from an HTML reader.
func ExtractLinksFromReader(r io.Reader, baseURL string) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").WithSeverity(errors.SeverityError).Build()
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid base URL").WithSeverity(errors.SeverityError).WithContext("base_url", baseURL).Build()
	}

	var links []*Link
	var lineNum int

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			lineNum++
			extractElementLinks(n, &links, base, lineNum)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return links, nil
}

// linkAttrs maps elements to the attribute holding their link target.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
}

// extractElementLinks extracts links from a single HTML element.
func extractElementLinks(n *html.Node, links *[]*Link, base *url.URL, lineNum int) {
	attr, ok := linkAttrs[n.Data]
	if !ok {
		return
	}
	target := getAttr(n, attr)
	if target == "" {
		return
	}
	var text string
	switch n.Data {
	case "a":
		text = extractText(n)
	case "img":
		text = getAttr(n, "alt")
	case "link":
		text = getAttr(n, "rel")
	}
	*links = append(*links, &Link{
		URL:        target,
		Text:       text,
		Tag:        n.Data,
		Attribute:  attr,
		IsInternal: isInternalLink(target, base),
		Line:       lineNum,
	})
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}

	return strings.TrimSpace(text.String())
}

// isInternalLink determines if a URL is internal to the site.
func isInternalLink(linkURL string, baseURL *url.URL) bool {
	// Skip special protocols
	if strings.HasPrefix(linkURL, "mailto:") ||
		strings.HasPrefix(linkURL, "tel:") ||
		strings.HasPrefix(linkURL, "javascript:") ||
		strings.HasPrefix(linkURL, "#") {
		return true // These are not external links
	}

	// Parse the link
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}

	// Relative URLs are internal
	if u.Scheme == "" || u.Host == "" {
		return true
	}

	// Compare hosts
	if baseURL != nil && u.Host == baseURL.Host {
		return true
	}

	return false
}

// FilterLinks filters links based on criteria.
func FilterLinks(links []*Link, includeInternal, includeExternal bool) []*Link {
	var filtered []*Link
	for _, link := range links {
		if link.IsInternal && includeInternal {
			filtered = append(filtered, link)
		} else if !link.IsInternal && includeExternal {
			filtered = append(filtered, link)
		}
	}
	return filtered
}

// ShouldVerifyLink reports whether a link points at something that can be checked.
func ShouldVerifyLink(link *Link) bool {
	// Skip anchors
	if strings.HasPrefix(link.URL, "#") {
		return false
	}

	// Skip special protocols
	if strings.HasPrefix(link.URL, "mailto:") ||
		strings.HasPrefix(link.URL, "tel:") ||
		strings.HasPrefix(link.URL, "javascript:") ||
		strings.HasPrefix(link.URL, "data:") {
		return false
	}

	// Skip empty links
	if link.URL == "" {
		return false
	}

	return true
}
