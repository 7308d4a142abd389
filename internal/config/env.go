package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
)

// Environment variables read by the generators.
const (
	EnvPlatform      = "MATRIX_PLATFORM"
	EnvGitHubOutput  = "GITHUB_OUTPUT"
	EnvCUDAVersions  = "CUDA_VERSIONS"
	EnvTorchVersions = "TORCH_VERSIONS"
	EnvGitHubToken   = "GITHUB_TOKEN"
)

// envFiles are tried in order; each existing file is loaded.
var envFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads .env and .env.local from the working directory when they
// exist. Variables already present in the process environment win.
func LoadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				Fatal().
				WithContext("path", name).
				Build()
		}
		slog.Debug("Loaded environment file", slog.String("path", name))
	}
	return nil
}

// SplitList parses a comma-separated version list, trimming whitespace and
// dropping empty items. An empty input returns nil.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// WithOverrides returns a copy of p whose version lists are replaced by the
// non-empty overrides.
func (p PlatformConfig) WithOverrides(cuda, torch []string) PlatformConfig {
	out := PlatformConfig{
		OS:    p.OS,
		CUDA:  append([]string(nil), p.CUDA...),
		Torch: append([]string(nil), p.Torch...),
	}
	if len(cuda) > 0 {
		out.CUDA = append([]string(nil), cuda...)
	}
	if len(torch) > 0 {
		out.Torch = append([]string(nil), torch...)
	}
	return out
}
