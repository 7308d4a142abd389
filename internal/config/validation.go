package config

import (
	"fmt"
	"net/url"
	"regexp"

	"git.home.luguber.info/inful/wheelindex/internal/vercmp"
)

var osSuffixRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateMatrix(); err != nil {
		return err
	}
	return cv.validatePages()
}

func (cv *configurationValidator) validateMatrix() error {
	m := cv.config.Matrix
	if _, err := url.ParseRequestURI(m.RegistryURL); err != nil {
		return fmt.Errorf("matrix.registry_url: %w", err)
	}
	if _, ok := m.Platforms[m.DefaultPlatform]; !ok {
		return fmt.Errorf("matrix.default_platform %q is not a configured platform", m.DefaultPlatform)
	}
	for name, p := range m.Platforms {
		if !osSuffixRe.MatchString(p.OS) {
			return fmt.Errorf("matrix.platforms.%s.os: invalid image suffix %q", name, p.OS)
		}
		if len(p.CUDA) == 0 || len(p.Torch) == 0 {
			return fmt.Errorf("matrix.platforms.%s: cuda and torch lists must not be empty", name)
		}
		for _, v := range append(append([]string{}, p.CUDA...), p.Torch...) {
			if _, err := vercmp.Parse(v); err != nil {
				return fmt.Errorf("matrix.platforms.%s: %w", name, err)
			}
		}
	}
	for torch, maxCUDA := range m.Exclusions {
		if _, err := vercmp.Parse(torch); err != nil {
			return fmt.Errorf("matrix.exclusions key: %w", err)
		}
		if _, err := vercmp.Parse(maxCUDA); err != nil {
			return fmt.Errorf("matrix.exclusions[%s]: %w", torch, err)
		}
	}
	return nil
}

func (cv *configurationValidator) validatePages() error {
	if _, err := url.ParseRequestURI(cv.config.Pages.APIURL); err != nil {
		return fmt.Errorf("pages.api_url: %w", err)
	}
	return nil
}
