package site

import (
	"context"
	"encoding/json"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var updateGolden = flag.Bool("update-golden", false, "Update golden files")

// pageSummary is the golden-compared shape of a rendered page. Timestamps
// are excluded so goldens stay stable.
type pageSummary struct {
	Title    string   `json:"title"`
	Headings []string `json:"headings"`
	Links    []string `json:"links"`
}

func TestGolden_Site(t *testing.T) {
	out := t.TempDir()
	_, err := newTestGenerator(&stubLister{releases: sampleReleases()}).
		Generate(context.Background(), Request{Owner: "o", Repo: "r", OutputDir: out})
	require.NoError(t, err)

	verifySiteStructure(t, out, filepath.Join("testdata", "golden", "site.golden.json"), *updateGolden)
}

func verifySiteStructure(t *testing.T, outputDir, goldenPath string, update bool) {
	t.Helper()

	actual := summarizeSite(t, outputDir)
	actualJSON, err := json.MarshalIndent(actual, "", "  ")
	require.NoError(t, err, "failed to marshal site summary")

	if update {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o750))
		require.NoError(t, os.WriteFile(goldenPath, append(actualJSON, '\n'), 0o600))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	// #nosec G304 -- test utility reading golden file from testdata
	goldenData, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file: %s", goldenPath)
	require.JSONEq(t, string(goldenData), string(actualJSON), "site structure mismatch")
}

func summarizeSite(t *testing.T, root string) map[string]pageSummary {
	t.Helper()
	pages := map[string]pageSummary{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		// #nosec G304 -- test utility reading from test output directory
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		doc, err := html.Parse(f)
		if err != nil {
			return err
		}
		pages[filepath.ToSlash(rel)] = summarizePage(doc)
		return nil
	})
	require.NoError(t, err)
	return pages
}

func summarizePage(doc *html.Node) pageSummary {
	s := pageSummary{Headings: []string{}, Links: []string{}}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				s.Title = nodeText(n)
			case "h1", "h2", "h3":
				s.Headings = append(s.Headings, n.Data+": "+nodeText(n))
			case "a":
				for _, a := range n.Attr {
					if a.Key == "href" {
						s.Links = append(s.Links, a.Val)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return s
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
