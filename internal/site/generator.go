// Package site builds the wheel index site: it fetches releases, groups
// their wheels and writes the landing and per-group pages.
package site

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/wheelindex/internal/config"
	"git.home.luguber.info/inful/wheelindex/internal/forge"
	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
	"git.home.luguber.info/inful/wheelindex/internal/index"
	"git.home.luguber.info/inful/wheelindex/internal/linkverify"
	"git.home.luguber.info/inful/wheelindex/internal/logfields"
	"git.home.luguber.info/inful/wheelindex/internal/metrics"
	"git.home.luguber.info/inful/wheelindex/internal/observability"
	"git.home.luguber.info/inful/wheelindex/internal/render"
)

// IndexFile is the file name written for every page.
const IndexFile = "index.html"

// Request identifies the repository to index and where to write the site.
type Request struct {
	Owner     string
	Repo      string
	OutputDir string
}

// Result summarizes a generated site.
type Result struct {
	// Pages lists the written pages as slash paths relative to OutputDir,
	// landing page first.
	Pages    []string
	Groups   int
	Wheels   int
	Skipped  int
	Releases int
	Duration time.Duration
}

// Generator runs the page pipeline.
type Generator struct {
	releases forge.ReleaseLister
	cfg      config.PagesConfig
	recorder metrics.Recorder
	now      func() time.Time
}

// NewGenerator creates a Generator reading releases from lister.
func NewGenerator(lister forge.ReleaseLister, cfg config.PagesConfig) *Generator {
	return &Generator{
		releases: lister,
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithClock sets the clock used for the "Generated on:" line.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	if now != nil {
		g.now = now
	}
	return g
}

type page struct {
	rel     string
	content string
}

// Generate fetches releases for req and writes the site under req.OutputDir.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Owner == "" || req.Repo == "" {
		return nil, errors.ValidationError("owner and repository are required").
			WithContext("owner", req.Owner).
			WithContext("repository", req.Repo).
			Build()
	}
	if req.OutputDir == "" {
		return nil, errors.ValidationError("output directory is required").Build()
	}

	start := time.Now()
	result := &Result{}

	releases, err := runStage(ctx, g.recorder, metrics.StageFetch, func(ctx context.Context) ([]forge.Release, error) {
		observability.InfoContext(ctx, "Fetching releases", logfields.Owner(req.Owner), logfields.Repository(req.Repo))
		return g.releases.ListReleases(ctx, req.Owner, req.Repo)
	})
	if err != nil {
		return nil, err
	}
	result.Releases = len(releases)

	ix, _ := runStage(ctx, g.recorder, metrics.StageOrganize, func(ctx context.Context) (*index.Index, error) {
		ix := index.Organize(releases)
		observability.InfoContext(ctx, "Organized wheels",
			slog.Int("releases", len(releases)),
			slog.Int("groups", len(ix.Groups())),
			slog.Int("wheels", ix.WheelCount()),
			slog.Int("skipped", ix.Skipped()))
		return ix, nil
	})
	result.Wheels = ix.WheelCount()
	result.Skipped = ix.Skipped()

	pages, err := runStage(ctx, g.recorder, metrics.StageRender, func(ctx context.Context) ([]page, error) {
		return g.render(ctx, ix, req)
	})
	if err != nil {
		return nil, err
	}
	result.Groups = len(pages) - 1

	_, err = runStage(ctx, g.recorder, metrics.StagePersist, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, persist(ctx, req.OutputDir, pages)
	})
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		result.Pages = append(result.Pages, p.rel)
	}

	_, err = runStage(ctx, g.recorder, metrics.StageVerify, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, verify(req.OutputDir, result.Pages)
	})
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	g.recorder.SetWheelsIndexed(result.Wheels)
	g.recorder.SetAssetsSkipped(result.Skipped)
	g.recorder.SetGroupsRendered(result.Groups)
	g.recorder.ObserveRunDuration(result.Duration)

	observability.InfoContext(ctx, "Site generated",
		logfields.Path(req.OutputDir),
		logfields.Count(len(result.Pages)),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

func (g *Generator) render(ctx context.Context, ix *index.Index, req Request) ([]page, error) {
	opts := render.Options{
		Owner:         req.Owner,
		Repo:          req.Repo,
		Package:       g.cfg.Package,
		Title:         g.cfg.Title,
		NotesMarkdown: g.cfg.NotesMarkdown,
		Now:           g.now,
	}

	landing, err := render.Landing(ix, opts)
	if err != nil {
		return nil, err
	}
	pages := []page{{rel: IndexFile, content: landing}}

	for _, grp := range ix.Groups() {
		observability.DebugContext(ctx, "Rendering group page",
			logfields.Group(grp.Key),
			logfields.CUDA(grp.CUDADisplay()),
			logfields.Torch(grp.TorchDisplay()),
			logfields.Count(len(grp.Wheels)))
		pages = append(pages, page{
			rel:     path.Join(grp.Key, IndexFile),
			content: render.SubIndex(grp, opts),
		})
	}
	return pages, nil
}

func persist(ctx context.Context, outputDir string, pages []page) error {
	for _, p := range pages {
		target := filepath.Join(outputDir, filepath.FromSlash(p.rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.FileSystemError("failed to create output directory").
				WithCause(err).
				WithContext("path", filepath.Dir(target)).
				Build()
		}
		// #nosec G306 -- published site content is world-readable
		if err := os.WriteFile(target, []byte(p.content), 0o644); err != nil {
			return errors.FileSystemError("failed to write page").
				WithCause(err).
				WithContext("path", target).
				Build()
		}
		observability.DebugContext(ctx, "Wrote page", logfields.Path(target))
	}
	return nil
}

func verify(outputDir string, pages []string) error {
	broken, err := linkverify.CheckInternalLinks(outputDir, pages)
	if err != nil {
		return err
	}
	if len(broken) == 0 {
		return nil
	}
	first := broken[0]
	return errors.RenderError("generated site contains broken internal links").
		WithContext("count", len(broken)).
		WithContext("page", first.Page).
		WithContext("url", first.URL).
		Build()
}

// runStage times fn and records its outcome under stage.
func runStage[T any](ctx context.Context, rec metrics.Recorder, stage string, fn func(context.Context) (T, error)) (T, error) {
	ctx = observability.WithStage(ctx, stage)
	start := time.Now()
	out, err := fn(ctx)
	rec.ObserveStageDuration(stage, time.Since(start))
	if err != nil {
		rec.IncStageResult(stage, metrics.ResultFatal)
		observability.DebugContext(ctx, "Stage failed", logfields.Error(err))
		return out, err
	}
	rec.IncStageResult(stage, metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage complete", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return out, nil
}
