package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultRegistryURL, cfg.Matrix.RegistryURL)
	assert.Equal(t, 100, cfg.Matrix.PageSize)
	assert.Equal(t, "linux", cfg.Matrix.DefaultPlatform)
	assert.Equal(t, []string{"linux", "linux-arm64", "windows"}, cfg.Matrix.PlatformNames())
	assert.Equal(t, map[string]string{"2.8": "12.9"}, cfg.Matrix.Exclusions)
	assert.Equal(t, "flash-attn3", cfg.Pages.Package)
	require.NoError(t, ValidateConfig(cfg))
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Matrix.Exclusions["2.9"] = "13.0"
	b := Default()
	assert.NotContains(t, b.Matrix.Exclusions, "2.9")
}

func TestParse(t *testing.T) {
	t.Setenv("WHEELINDEX_TEST_TITLE", "Nightly Wheels")
	data := []byte(`
matrix:
  platforms:
    cuda-only:
      os: ubuntu24.04
      cuda: ["12.8"]
      torch: ["2.9.0"]
  exclusions: {}
pages:
  title: ${WHEELINDEX_TEST_TITLE}
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "cuda-only", cfg.Matrix.DefaultPlatform)
	assert.Empty(t, cfg.Matrix.Exclusions, "explicit empty map disables exclusions")
	assert.Equal(t, "Nightly Wheels", cfg.Pages.Title)
	assert.Equal(t, DefaultAPIURL, cfg.Pages.APIURL)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "matrix: ["},
		{"bad cuda", "matrix:\n  platforms:\n    linux: {os: ubuntu22.04, cuda: [\"12.x\"], torch: [\"2.8.0\"]}\n"},
		{"empty torch", "matrix:\n  platforms:\n    linux: {os: ubuntu22.04, cuda: [\"12.8\"], torch: []}\n"},
		{"bad os", "matrix:\n  platforms:\n    linux: {os: \"ubuntu 22\", cuda: [\"12.8\"], torch: [\"2.8.0\"]}\n"},
		{"bad exclusion", "matrix:\n  exclusions: {\"2.8\": \"latest\"}\n"},
		{"unknown default", "matrix:\n  default_platform: macos\n"},
		{"bad api url", "pages:\n  api_url: \"::\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("missing file is a config error", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})

	t.Run("file is parsed", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		path := filepath.Join(dir, "wheelindex.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pages:\n  package: flash-attn\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "flash-attn", cfg.Pages.Package)
	})
}

func TestPlatform(t *testing.T) {
	cfg := Default()

	p, err := cfg.Matrix.Platform("linux")
	require.NoError(t, err)
	assert.Equal(t, "ubuntu22.04", p.OS)

	_, err = cfg.Matrix.Platform("macos")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
