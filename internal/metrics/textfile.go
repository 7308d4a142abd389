package metrics

import (
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
)

// WriteTextfile writes the recorder's registry in the Prometheus text
// exposition format, creating the parent directory when missing.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FileSystemError("failed to create metrics directory").
				WithCause(err).
				WithContext("path", dir).
				Build()
		}
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return errors.FileSystemError("failed to write metrics textfile").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
