package config

import (
	"maps"
	"slices"
)

const (
	DefaultRegistryURL = "https://hub.docker.com/v2/repositories/nvidia/cuda/tags/"
	DefaultPageSize    = 100
	DefaultPlatform    = "linux"
	DefaultAPIURL      = "https://api.github.com"
	DefaultPackage     = "flash-attn3"
	DefaultTitle       = "Flash-Attention 3 Wheels"
)

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}

func defaultPlatforms() map[string]PlatformConfig {
	// Windows builds resolve the full CUDA version from the Linux devel images;
	// the registry publishes no Windows devel tags.
	return map[string]PlatformConfig{
		"linux": {
			OS:    "ubuntu22.04",
			CUDA:  []string{"12.6", "12.8", "13.0"},
			Torch: []string{"2.8.0", "2.9.0"},
		},
		"linux-arm64": {
			OS:    "ubuntu22.04",
			CUDA:  []string{"12.8", "13.0"},
			Torch: []string{"2.8.0", "2.9.0"},
		},
		"windows": {
			OS:    "ubuntu22.04",
			CUDA:  []string{"12.8", "13.0"},
			Torch: []string{"2.8.0", "2.9.0"},
		},
	}
}

func defaultExclusions() map[string]string {
	return map[string]string{"2.8": "12.9"}
}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// MatrixDefaultApplier handles Matrix configuration defaults.
type MatrixDefaultApplier struct{}

func (m *MatrixDefaultApplier) Domain() string { return "matrix" }

func (m *MatrixDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Matrix.RegistryURL == "" {
		cfg.Matrix.RegistryURL = DefaultRegistryURL
	}
	if cfg.Matrix.PageSize <= 0 {
		cfg.Matrix.PageSize = DefaultPageSize
	}
	if len(cfg.Matrix.Platforms) == 0 {
		cfg.Matrix.Platforms = defaultPlatforms()
	}
	if cfg.Matrix.DefaultPlatform == "" {
		cfg.Matrix.DefaultPlatform = DefaultPlatform
		if _, ok := cfg.Matrix.Platforms[DefaultPlatform]; !ok {
			// Custom tables without "linux" default to their first platform by name.
			cfg.Matrix.DefaultPlatform = cfg.Matrix.PlatformNames()[0]
		}
	}
	// A present-but-empty exclusions map means "no exclusions"; only an
	// omitted key falls back to the defaults.
	if cfg.Matrix.Exclusions == nil {
		cfg.Matrix.Exclusions = defaultExclusions()
	}
	return nil
}

// PagesDefaultApplier handles Pages configuration defaults.
type PagesDefaultApplier struct{}

func (p *PagesDefaultApplier) Domain() string { return "pages" }

func (p *PagesDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Pages.APIURL == "" {
		cfg.Pages.APIURL = DefaultAPIURL
	}
	if cfg.Pages.Package == "" {
		cfg.Pages.Package = DefaultPackage
	}
	if cfg.Pages.Title == "" {
		cfg.Pages.Title = DefaultTitle
	}
	return nil
}

func applyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{&MatrixDefaultApplier{}, &PagesDefaultApplier{}}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// PlatformNames returns the configured platform identifiers, sorted.
func (m MatrixConfig) PlatformNames() []string {
	return slices.Sorted(maps.Keys(m.Platforms))
}
