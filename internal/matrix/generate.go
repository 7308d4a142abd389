package matrix

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"git.home.luguber.info/inful/wheelindex/internal/config"
	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
	"git.home.luguber.info/inful/wheelindex/internal/logfields"
	"git.home.luguber.info/inful/wheelindex/internal/observability"
	"git.home.luguber.info/inful/wheelindex/internal/registry"
	"git.home.luguber.info/inful/wheelindex/internal/vercmp"
)

// Entry is one job of the CI matrix.
type Entry struct {
	CUDA     string `json:"cuda"`
	CUDAFull string `json:"cuda_full"`
	Torch    string `json:"torch"`
}

// Matrix is the document consumed by a GitHub Actions strategy.matrix.
type Matrix struct {
	Include []Entry `json:"include"`
}

// Build crosses the platform's CUDA and torch lists. Every requested CUDA
// version must be present in latest; a missing one is a drift error and no
// matrix is returned. Pairs where the torch major.minor has an exclusion
// ceiling lower than the CUDA version are skipped, as are repeated pairs.
func Build(latest map[string]CUDARelease, platform config.PlatformConfig, exclusions map[string]string) (*Matrix, error) {
	m := &Matrix{Include: make([]Entry, 0, len(platform.CUDA)*len(platform.Torch))}
	seen := make(map[[2]string]struct{})

	for _, rawCUDA := range platform.CUDA {
		cuda := strings.TrimSpace(rawCUDA)
		release, ok := latest[cuda]
		if !ok {
			return nil, errors.DriftError("requested CUDA version not found in registry tags").
				WithContext("cuda", cuda).
				WithContext("os", platform.OS).
				WithContext("available", slices.Sorted(maps.Keys(latest))).
				Build()
		}

		for _, rawTorch := range platform.Torch {
			torch := strings.TrimSpace(rawTorch)
			excluded, err := isExcluded(cuda, torch, exclusions)
			if err != nil {
				return nil, err
			}
			if excluded {
				slog.Debug("Skipping excluded pair", logfields.CUDA(cuda), logfields.Torch(torch))
				continue
			}
			pair := [2]string{cuda, torch}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			m.Include = append(m.Include, Entry{CUDA: cuda, CUDAFull: release.Full(), Torch: torch})
		}
	}
	return m, nil
}

// isExcluded reports whether torch's major.minor caps CUDA below cuda.
func isExcluded(cuda, torch string, exclusions map[string]string) (bool, error) {
	maxCUDA, ok := exclusions[vercmp.MajorMinor(torch)]
	if !ok {
		return false, nil
	}
	greater, err := vercmp.Greater(cuda, maxCUDA)
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryValidation, "invalid version in matrix input").
			Fatal().
			WithContext("cuda", cuda).
			WithContext("torch", torch).
			Build()
	}
	return greater, nil
}

// Generator fetches registry tags and builds the matrix for one platform.
type Generator struct {
	tags   registry.TagLister
	matrix config.MatrixConfig
}

// NewGenerator wires a tag source to an immutable matrix configuration.
func NewGenerator(tags registry.TagLister, cfg config.MatrixConfig) *Generator {
	return &Generator{tags: tags, matrix: cfg}
}

// Generate resolves platformName (after applying any list overrides),
// lists the registry tags and builds the matrix.
func (g *Generator) Generate(ctx context.Context, platformName string, cudaOverride, torchOverride []string) (*Matrix, error) {
	platform, err := g.matrix.Platform(platformName)
	if err != nil {
		return nil, err
	}
	platform = platform.WithOverrides(cudaOverride, torchOverride)

	tags, err := g.tags.ListTags(ctx, platform.OS)
	if err != nil {
		return nil, err
	}
	latest := LatestPatches(tags, platform.OS)
	observability.InfoContext(ctx, "Resolved CUDA releases",
		logfields.Count(len(latest)),
		slog.String("os", platform.OS))

	m, err := Build(latest, platform, g.matrix.Exclusions)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("platform", platformName)
		}
		return nil, err
	}
	return m, nil
}
