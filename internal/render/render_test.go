package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/wheelindex/internal/forge"
	"git.home.luguber.info/inful/wheelindex/internal/index"
)

func fixedClock(ts string) func() time.Time {
	return func() time.Time {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			panic(err)
		}
		return t
	}
}

func testOptions() Options {
	return Options{
		Owner:   "octo",
		Repo:    "fa3-wheels",
		Package: "flash-attn3",
		Title:   "Flash-Attention 3 Wheels",
		Now:     fixedClock("2025-09-08T10:11:12Z"),
	}
}

func whl(name string) forge.Asset {
	return forge.Asset{Name: name, BrowserDownloadURL: "https://github.com/octo/fa3-wheels/releases/download/v1/" + name, Size: 10}
}

func testIndex() *index.Index {
	return index.Organize([]forge.Release{
		{
			TagName:     "v1",
			PublishedAt: "2025-09-07T02:13:44Z",
			Assets: []forge.Asset{
				whl("flash_attn_3-3.0.0.20250907.cu129torch280cxx11abitrue.dfb664-cp312-abi3-linux_x86_64.whl"),
				whl("flash_attn_3-3.0.0.20250907.cu129torch280cxx11abitrue.dfb664-cp310-abi3-win_amd64.whl"),
				whl("flash_attn_3-3.0.0.20250907.cu130torch290cxx11abitrue.dfb664-cp310-abi3-linux_aarch64.whl"),
			},
		},
		{
			TagName:     "v0",
			PublishedAt: "2025-08-01T00:00:00Z",
			Assets: []forge.Asset{
				whl("flash_attn_3-3.0.0.20250801.cu126torch280cxx11abifalse.abc123-cp39-abi3-linux_x86_64.whl"),
			},
		},
	})
}

func parseHTML(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func collect(n *html.Node, tag, attr string) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			for _, a := range n.Attr {
				if a.Key == attr {
					out = append(out, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func withoutTimestamp(page string) string {
	var kept []string
	for _, line := range strings.Split(page, "\n") {
		if strings.Contains(line, "Generated on:") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func TestSubIndex(t *testing.T) {
	ix := testIndex()
	g, ok := ix.Group("cu129_torch280")
	require.True(t, ok)

	page := SubIndex(g, testOptions())
	assert.Contains(t, page, `<meta name="api-version" value="2" />`)
	assert.Contains(t, page, "Generated on: 2025-09-08 10:11:12 UTC")
	assert.Contains(t, page, "CUDA 12.9, PyTorch 2.8.0")

	hrefs := collect(parseHTML(t, page), "a", "href")
	require.Len(t, hrefs, 2)
	assert.True(t, strings.HasSuffix(hrefs[0], "cp310-abi3-win_amd64.whl"))
	assert.True(t, strings.HasSuffix(hrefs[1], "cp312-abi3-linux_x86_64.whl"))
}

func TestSubIndex_EscapesURLs(t *testing.T) {
	ix := index.Organize([]forge.Release{{
		PublishedAt: "2025-09-07T00:00:00Z",
		Assets: []forge.Asset{{
			Name:               "flash_attn_3-3.0.0.20250907.cu129torch280cxx11abitrue.dfb664-cp310-abi3-linux_x86_64.whl",
			BrowserDownloadURL: `https://x.invalid/a.whl?x=1&y="2"`,
		}},
	}})
	g, _ := ix.Group("cu129_torch280")
	page := SubIndex(g, testOptions())
	assert.Contains(t, page, `href="https://x.invalid/a.whl?x=1&amp;y=&#34;2&#34;"`)
}

func TestLanding(t *testing.T) {
	page, err := Landing(testIndex(), testOptions())
	require.NoError(t, err)

	doc := parseHTML(t, page)
	hrefs := collect(doc, "a", "href")
	assert.Equal(t, []string{
		"cu130_torch290/index.html",
		"cu129_torch280/index.html",
		"cu126_torch280/index.html",
		"https://github.com/octo/fa3-wheels",
	}, hrefs)

	assert.Contains(t, page, "pip install flash-attn3 --find-links https://octo.github.io/fa3-wheels/cu129_torch280")
	assert.Contains(t, page, "2 wheels available &bull; Last updated: 2025-09-07")
	assert.Contains(t, page, "1 wheels available &bull; Last updated: 2025-08-01")
	assert.Contains(t, page, `<span class="badge badge-windows">Windows</span>`)
	assert.Contains(t, page, `<span class="badge badge-arm64">Arm64</span>`)
	assert.Contains(t, page, "<strong>Supported CUDA Versions:</strong> 13.0, 12.9, 12.6")
	assert.Contains(t, page, "<strong>Supported PyTorch Versions:</strong> 2.9.0, 2.8.0")
	assert.Contains(t, page, "<strong>Supported Python Versions:</strong> 3.12, 3.10, 3.9")
	assert.Contains(t, page, "# Install for CUDA 13.0, PyTorch 2.9.0")
	assert.NotContains(t, page, "<h2>Notes</h2>")
}

func TestLanding_Notes(t *testing.T) {
	opts := testOptions()
	opts.NotesMarkdown = "Wheels are built **weekly**.\n\n<script>alert(1)</script>\n"

	page, err := Landing(testIndex(), opts)
	require.NoError(t, err)
	assert.Contains(t, page, "<h2>Notes</h2>")
	assert.Contains(t, page, "<strong>weekly</strong>")
	assert.NotContains(t, page, "<script>")
}

func TestLanding_NoGroups(t *testing.T) {
	page, err := Landing(index.Organize(nil), testOptions())
	require.NoError(t, err)
	assert.Contains(t, page, "No wheels have been published yet.")
	assert.NotContains(t, page, "wheel-section\">")
	assert.NotContains(t, page, "Usage Examples")
}

func TestRender_IdempotentApartFromTimestamp(t *testing.T) {
	first := testOptions()
	second := testOptions()
	second.Now = fixedClock("2026-01-01T00:00:00Z")

	a, err := Landing(testIndex(), first)
	require.NoError(t, err)
	b, err := Landing(testIndex(), second)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, withoutTimestamp(a), withoutTimestamp(b))

	again, err := Landing(testIndex(), first)
	require.NoError(t, err)
	assert.Equal(t, a, again)

	g, _ := testIndex().Group("cu129_torch280")
	assert.Equal(t, withoutTimestamp(SubIndex(g, first)), withoutTimestamp(SubIndex(g, second)))
}

func TestOptions_URLs(t *testing.T) {
	opts := testOptions()
	assert.Equal(t, "https://octo.github.io/fa3-wheels", opts.PagesURL())
	assert.Equal(t, "https://github.com/octo/fa3-wheels", opts.RepositoryURL())
	assert.Equal(t, "pip install flash-attn3 --find-links https://octo.github.io/fa3-wheels/cu126_torch280", opts.InstallCommand("cu126_torch280"))
}
