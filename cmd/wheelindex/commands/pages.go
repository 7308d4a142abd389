package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/wheelindex/internal/config"
	"git.home.luguber.info/inful/wheelindex/internal/forge"
	"git.home.luguber.info/inful/wheelindex/internal/metrics"
	"git.home.luguber.info/inful/wheelindex/internal/site"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	Owner       string `help:"GitHub repository owner" required:""`
	Repo        string `help:"GitHub repository name" required:""`
	Token       string `help:"GitHub token (optional)" env:"GITHUB_TOKEN"`
	Output      string `short:"o" help:"Output directory" default:"docs"`
	APIURL      string `name:"api-url" help:"Override the GitHub API endpoint"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile"`

	stdout io.Writer `kong:"-"`
}

func (p *PagesCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	recorder, flush := newRecorder(p.MetricsFile)
	return flushMetrics(p.run(ctx, g, cfg, recorder), flush)
}

func (p *PagesCmd) run(ctx context.Context, g *Global, cfg *config.Config, recorder metrics.Recorder) error {
	apiURL := p.APIURL
	if apiURL == "" {
		apiURL = cfg.Pages.APIURL
	}
	client := forge.NewGitHubClient(g.httpClient(), apiURL, p.Token)

	res, err := site.NewGenerator(client, cfg.Pages).
		WithRecorder(recorder).
		Generate(g.context(ctx), site.Request{Owner: p.Owner, Repo: p.Repo, OutputDir: p.Output})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(p.out(), "Generated %d pages (%d groups, %d wheels) in %s\n",
		len(res.Pages), res.Groups, res.Wheels, p.Output)
	return err
}

func (p *PagesCmd) out() io.Writer {
	if p.stdout != nil {
		return p.stdout
	}
	return os.Stdout
}
