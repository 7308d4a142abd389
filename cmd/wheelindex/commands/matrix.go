package commands

import (
	"context"
	"io"
	"os"
	"time"

	"git.home.luguber.info/inful/wheelindex/internal/config"
	"git.home.luguber.info/inful/wheelindex/internal/logfields"
	"git.home.luguber.info/inful/wheelindex/internal/matrix"
	"git.home.luguber.info/inful/wheelindex/internal/metrics"
	"git.home.luguber.info/inful/wheelindex/internal/observability"
	"git.home.luguber.info/inful/wheelindex/internal/registry"
)

// MatrixCmd implements the 'matrix' command.
type MatrixCmd struct {
	Platform      string `help:"Target platform (defaults to matrix.default_platform)" env:"MATRIX_PLATFORM"`
	RegistryURL   string `name:"registry-url" help:"Override the tag listing endpoint"`
	CUDAVersions  string `name:"cuda-versions" help:"Comma-separated CUDA versions replacing the platform list" env:"CUDA_VERSIONS"`
	TorchVersions string `name:"torch-versions" help:"Comma-separated PyTorch versions replacing the platform list" env:"TORCH_VERSIONS"`
	GitHubOutput  string `name:"github-output" help:"File the matrix output is appended to" env:"GITHUB_OUTPUT"`
	MetricsFile   string `name:"metrics-file" help:"Write Prometheus metrics to this textfile"`

	stdout io.Writer `kong:"-"`
}

func (m *MatrixCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	recorder, flush := newRecorder(m.MetricsFile)
	return flushMetrics(m.run(ctx, g, cfg, recorder), flush)
}

func (m *MatrixCmd) run(ctx context.Context, g *Global, cfg *config.Config, recorder metrics.Recorder) error {
	platform := m.Platform
	if platform == "" {
		platform = cfg.Matrix.DefaultPlatform
	}
	registryURL := m.RegistryURL
	if registryURL == "" {
		registryURL = cfg.Matrix.RegistryURL
	}

	ctx = observability.WithPlatform(g.context(ctx), platform)
	ctx = observability.WithStage(ctx, metrics.StageMatrix)
	observability.InfoContext(ctx, "Generating build matrix", logfields.URL(registryURL))

	client := registry.NewClient(g.httpClient(), registryURL, cfg.Matrix.PageSize)
	gen := matrix.NewGenerator(client, cfg.Matrix)

	start := time.Now()
	mtx, err := gen.Generate(ctx, platform, config.SplitList(m.CUDAVersions), config.SplitList(m.TorchVersions))
	recorder.ObserveStageDuration(metrics.StageMatrix, time.Since(start))
	if err != nil {
		recorder.IncStageResult(metrics.StageMatrix, metrics.ResultFatal)
		return err
	}
	recorder.IncStageResult(metrics.StageMatrix, metrics.ResultSuccess)
	recorder.SetMatrixEntries(platform, len(mtx.Include))
	recorder.ObserveRunDuration(time.Since(start))

	observability.InfoContext(ctx, "Build matrix ready", logfields.Count(len(mtx.Include)))
	return matrix.Emit(m.out(), mtx, m.GitHubOutput)
}

func (m *MatrixCmd) out() io.Writer {
	if m.stdout != nil {
		return m.stdout
	}
	return os.Stdout
}
