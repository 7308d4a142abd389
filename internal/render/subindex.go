package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/wheelindex/internal/index"
)

// SubIndex renders the pip --find-links page of a group: one anchor per
// wheel, sorted by filename.
func SubIndex(g *index.Group, opts Options) string {
	title := html.EscapeString(opts.Title)
	versions := fmt.Sprintf("CUDA %s, PyTorch %s", g.CUDADisplay(), g.TorchDisplay())

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("    <meta charset=\"utf-8\" />\n")
	fmt.Fprintf(&b, "    <title>%s - %s</title>\n", title, versions)
	b.WriteString("    <meta name=\"api-version\" value=\"2\" />\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", title)
	fmt.Fprintf(&b, "    <p>%s</p>\n", versions)
	fmt.Fprintf(&b, "    <p>Generated on: %s</p>\n", opts.timestamp())
	b.WriteString("    <ul>\n")
	for _, w := range g.SortedWheels() {
		fmt.Fprintf(&b, "        <li><a href=\"%s\">%s</a></li>\n",
			html.EscapeString(w.DownloadURL), html.EscapeString(w.Filename))
	}
	b.WriteString("    </ul>\n</body>\n</html>\n")
	return b.String()
}
