package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("unknown platform").Build(), expected: 2},
		{name: "not found", err: NewError(CategoryNotFound, "no such repo").Build(), expected: 4},
		{name: "auth", err: NewError(CategoryAuth, "bad token").Build(), expected: 5},
		{name: "config", err: ConfigError("bad yaml").Build(), expected: 7},
		{name: "forge", err: ForgeError("api error").Build(), expected: 8},
		{name: "registry", err: RegistryError("api error").Build(), expected: 8},
		{name: "drift", err: DriftError("missing cuda").Build(), expected: 9},
		{name: "render", err: RenderError("broken link").Build(), expected: 11},
		{name: "unclassified", err: errors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := DriftError("requested CUDA version not found in registry tags").
		WithContext("cuda", "13.1").
		WithContext("platform", "linux").
		Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	assert.Equal(t,
		"drift: requested CUDA version not found in registry tags (cuda=13.1 platform=linux)",
		quiet.FormatError(err))

	verbose := NewCLIErrorAdapter(true, slog.Default())
	assert.Equal(t, err.Error(), verbose.FormatError(err))

	assert.Equal(t, "Error: boom", quiet.FormatError(errors.New("boom")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var stderr, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(DriftError("missing cuda").Build())

	assert.Equal(t, 9, code)
	assert.Contains(t, stderr.String(), "drift: missing cuda")
	assert.Contains(t, logs.String(), "category=drift")

	code = -1
	adapter.HandleError(nil)
	assert.Equal(t, -1, code, "nil error must not exit")
}
