package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
	"git.home.luguber.info/inful/wheelindex/internal/index"
)

const landingStyle = `        body { font-family: Arial, sans-serif; margin: 40px; }
        .header { background: #f4f4f4; padding: 20px; border-radius: 5px; }
        .wheel-section { margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
        .wheel-link { display: inline-block; margin: 5px; padding: 8px 12px; background: #007acc; color: white; text-decoration: none; border-radius: 3px; }
        .wheel-link:hover { background: #005a9a; }
        .badge { display: inline-block; margin-left: 6px; padding: 2px 6px; background: #555; color: white; font-size: 0.8em; border-radius: 3px; }
        .stats { color: #666; font-size: 0.9em; }
        code { background: #f4f4f4; padding: 2px 4px; border-radius: 3px; }
`

// Landing renders the repository landing page: one section per non-empty
// group, newest key first, followed by a quick reference derived from the
// groups.
func Landing(ix *index.Index, opts Options) (string, error) {
	notes, err := renderNotes(opts.NotesMarkdown)
	if err != nil {
		return "", err
	}

	title := html.EscapeString(opts.Title)
	pagesURL := html.EscapeString(opts.PagesURL())
	groups := ix.Groups()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("    <meta charset=\"utf-8\" />\n")
	fmt.Fprintf(&b, "    <title>%s Repository</title>\n", title)
	fmt.Fprintf(&b, "    <style>\n%s    </style>\n", landingStyle)
	b.WriteString("</head>\n<body>\n")

	b.WriteString("    <div class=\"header\">\n")
	fmt.Fprintf(&b, "        <h1>%s Repository</h1>\n", title)
	fmt.Fprintf(&b, "        <p>Pre-built wheels for %s</p>\n", html.EscapeString(opts.Package))
	fmt.Fprintf(&b, "        <p>Generated on: %s</p>\n", opts.timestamp())
	b.WriteString("    </div>\n\n")

	b.WriteString("    <h2>Installation Instructions</h2>\n")
	b.WriteString("    <p>Point pip at the index matching your CUDA and PyTorch versions:</p>\n")
	fmt.Fprintf(&b, "    <pre><code>pip install %s --find-links %s/&lt;index&gt;</code></pre>\n\n",
		html.EscapeString(opts.Package), pagesURL)

	b.WriteString("    <h2>Available Wheel Indexes</h2>\n")
	if len(groups) == 0 {
		b.WriteString("    <p>No wheels have been published yet.</p>\n")
	}
	for _, g := range groups {
		writeGroupSection(&b, g, opts)
	}

	if notes != "" {
		b.WriteString("\n    <h2>Notes</h2>\n")
		b.WriteString("    <div class=\"notes\">\n")
		b.WriteString(notes)
		b.WriteString("    </div>\n")
	}

	writeQuickReference(&b, ix, opts)
	if len(groups) > 0 {
		writeUsageExamples(&b, groups[0], opts)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func writeGroupSection(b *strings.Builder, g *index.Group, opts Options) {
	key := html.EscapeString(g.Key)
	caser := cases.Title(language.English)
	b.WriteString("\n    <div class=\"wheel-section\">\n")
	fmt.Fprintf(b, "        <h3>CUDA %s, PyTorch %s", g.CUDADisplay(), g.TorchDisplay())
	for _, tag := range g.Platforms() {
		fmt.Fprintf(b, " <span class=\"badge badge-%s\">%s</span>", html.EscapeString(tag), html.EscapeString(caser.String(tag)))
	}
	b.WriteString("</h3>\n")
	fmt.Fprintf(b, "        <p class=\"stats\">%d wheels available &bull; Last updated: %s</p>\n",
		len(g.Wheels), html.EscapeString(g.LatestDate()))
	fmt.Fprintf(b, "        <a href=\"%s/index.html\" class=\"wheel-link\">View Wheels</a>\n", key)
	b.WriteString("        <details>\n")
	b.WriteString("            <summary>Direct pip command</summary>\n")
	fmt.Fprintf(b, "            <code>%s</code>\n", html.EscapeString(opts.InstallCommand(g.Key)))
	b.WriteString("        </details>\n")
	b.WriteString("    </div>\n")
}

func writeQuickReference(b *strings.Builder, ix *index.Index, opts Options) {
	repoURL := html.EscapeString(opts.RepositoryURL())
	b.WriteString("\n    <h2>Quick Reference</h2>\n    <ul>\n")
	fmt.Fprintf(b, "        <li><strong>GitHub Repository:</strong> <a href=\"%s\">%s</a></li>\n", repoURL, repoURL)
	writeVersionItem(b, "Supported CUDA Versions", ix.CUDAVersions())
	writeVersionItem(b, "Supported PyTorch Versions", ix.TorchVersions())
	writeVersionItem(b, "Supported Python Versions", ix.PythonVersions())
	b.WriteString("    </ul>\n")
}

func writeVersionItem(b *strings.Builder, label string, versions []string) {
	if len(versions) == 0 {
		return
	}
	fmt.Fprintf(b, "        <li><strong>%s:</strong> %s</li>\n", label, html.EscapeString(strings.Join(versions, ", ")))
}

func writeUsageExamples(b *strings.Builder, newest *index.Group, opts Options) {
	cmd := html.EscapeString(opts.InstallCommand(newest.Key))
	pkg := html.EscapeString(opts.Package)
	findLinks := html.EscapeString(fmt.Sprintf("--find-links %s/%s", opts.PagesURL(), newest.Key))

	b.WriteString("\n    <h2>Usage Examples</h2>\n")
	fmt.Fprintf(b, "    <pre><code># Install for CUDA %s, PyTorch %s\n%s\n\n",
		newest.CUDADisplay(), newest.TorchDisplay(), cmd)
	fmt.Fprintf(b, "# Upgrade existing installation\npip install --upgrade %s %s</code></pre>\n", pkg, findLinks)
}

func renderNotes(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", errors.RenderError("failed to render landing notes").
			WithCause(err).
			Build()
	}
	return buf.String(), nil
}
