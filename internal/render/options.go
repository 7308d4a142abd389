// Package render produces the static HTML pages of the wheel index.
//
// Pages are assembled with strings.Builder and escaped with x/net/html.
// Rendering is deterministic for identical input apart from the
// "Generated on:" line, whose time comes from Options.Now.
package render

import (
	"fmt"
	"time"
)

// TimestampLayout formats the "Generated on:" line.
const TimestampLayout = "2006-01-02 15:04:05 UTC"

// Options configures page rendering.
type Options struct {
	Owner   string
	Repo    string
	Package string
	Title   string
	// NotesMarkdown is rendered into a Notes section on the landing page.
	NotesMarkdown string
	// Now returns the generation time; time.Now when nil.
	Now func() time.Time
}

func (o Options) timestamp() string {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return now().UTC().Format(TimestampLayout)
}

// PagesURL is the GitHub Pages base URL for the repository.
func (o Options) PagesURL() string {
	return fmt.Sprintf("https://%s.github.io/%s", o.Owner, o.Repo)
}

// RepositoryURL is the GitHub URL of the repository.
func (o Options) RepositoryURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", o.Owner, o.Repo)
}

// InstallCommand returns the pip command that installs from the group's page.
func (o Options) InstallCommand(groupKey string) string {
	return fmt.Sprintf("pip install %s --find-links %s/%s", o.Package, o.PagesURL(), groupKey)
}
