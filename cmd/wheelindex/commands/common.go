// Package commands implements the wheelindex subcommands.
package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wheelindex/internal/metrics"
	"git.home.luguber.info/inful/wheelindex/internal/observability"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	RunID  string
	// HTTPClient is used for upstream APIs; a default client when nil.
	HTTPClient *http.Client
}

func (g *Global) httpClient() *http.Client {
	if g != nil && g.HTTPClient != nil {
		return g.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (g *Global) context(ctx context.Context) context.Context {
	if g != nil && g.RunID != "" {
		ctx = observability.WithRunID(ctx, g.RunID)
	}
	return ctx
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (built-in defaults when empty)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Matrix MatrixCmd `cmd:"" help:"Generate the CI build matrix from the CUDA image registry"`
	Pages  PagesCmd  `cmd:"" help:"Render the wheel index pages from GitHub releases"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// newRecorder returns a Prometheus recorder when a metrics file is requested.
func newRecorder(metricsFile string) (metrics.Recorder, func() error) {
	if metricsFile == "" {
		return metrics.NoopRecorder{}, func() error { return nil }
	}
	pr := metrics.NewPrometheusRecorder(nil)
	return pr, func() error { return pr.WriteTextfile(metricsFile) }
}

// flushMetrics writes the metrics file; a write failure only fails the run
// when the command itself succeeded.
func flushMetrics(runErr error, flush func() error) error {
	if err := flush(); err != nil {
		if runErr != nil {
			slog.Warn("Failed to write metrics file", slog.String("error", err.Error()))
			return runErr
		}
		return err
	}
	return runErr
}
