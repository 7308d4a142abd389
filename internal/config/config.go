package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
)

// Config is the complete wheelindex configuration. It is loaded once per run
// and handed to the generators; nothing mutates it afterwards.
type Config struct {
	Matrix MatrixConfig `yaml:"matrix"`
	Pages  PagesConfig  `yaml:"pages"`
}

// MatrixConfig drives the CI matrix generator.
type MatrixConfig struct {
	RegistryURL     string                    `yaml:"registry_url"`
	PageSize        int                       `yaml:"page_size"`
	DefaultPlatform string                    `yaml:"default_platform"`
	Platforms       map[string]PlatformConfig `yaml:"platforms"`
	// Exclusions maps a torch major.minor to the highest CUDA version it supports.
	Exclusions map[string]string `yaml:"exclusions"`
}

// PlatformConfig lists the versions built for one target platform.
type PlatformConfig struct {
	// OS is the suffix of the CUDA devel image tags, e.g. "ubuntu22.04".
	OS    string   `yaml:"os"`
	CUDA  []string `yaml:"cuda"`
	Torch []string `yaml:"torch"`
}

// PagesConfig drives the wheel index page generator.
type PagesConfig struct {
	APIURL        string `yaml:"api_url"`
	Package       string `yaml:"package"`
	Title         string `yaml:"title"`
	NotesMarkdown string `yaml:"notes_markdown"`
}

// Load reads the configuration file at path and applies defaults. An empty
// path yields the built-in defaults.
func Load(path string) (*Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return nil, err
	}

	if path == "" {
		cfg := Default()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return cfg, nil
}

// Parse decodes YAML (after ${VAR} expansion), applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Platform returns the named platform table entry.
func (m MatrixConfig) Platform(name string) (PlatformConfig, error) {
	p, ok := m.Platforms[name]
	if !ok {
		return PlatformConfig{}, errors.ValidationError("unknown platform").
			WithContext("platform", name).
			WithContext("known", m.PlatformNames()).
			Build()
	}
	return p, nil
}
