package matrix

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/wheelindex/internal/foundation/errors"
)

// OutputName is the step output key the workflow reads.
const OutputName = "matrix"

// Compact renders the matrix without whitespace.
func (m *Matrix) Compact() ([]byte, error) {
	return json.Marshal(m)
}

// Indented renders the matrix with two-space indentation for humans.
func (m *Matrix) Indented() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// WriteGitHubOutput appends the matrix to a GitHub Actions output file using
// the multi-line "name<<EOF" form.
func WriteGitHubOutput(path string, m *Matrix) error {
	compact, err := m.Compact()
	if err != nil {
		return errors.InternalError("failed to encode matrix").WithCause(err).Build()
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.FileSystemError("failed to open CI output file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if _, err := fmt.Fprintf(f, "%s<<EOF\n%s\nEOF\n", OutputName, compact); err != nil {
		_ = f.Close()
		return errors.FileSystemError("failed to write CI output file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if err := f.Close(); err != nil {
		return errors.FileSystemError("failed to close CI output file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// Emit writes the CI output file when outputPath is set and always prints the
// indented matrix to w.
func Emit(w io.Writer, m *Matrix, outputPath string) error {
	if outputPath != "" {
		if err := WriteGitHubOutput(outputPath, m); err != nil {
			return err
		}
	}
	indented, err := m.Indented()
	if err != nil {
		return errors.InternalError("failed to encode matrix").WithCause(err).Build()
	}
	_, err = fmt.Fprintf(w, "Generated matrix:\n%s\n", indented)
	return err
}
