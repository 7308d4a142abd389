package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "wheelindex.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		assert.Equal(t, "wheelindex.yaml", file)
	})

	t.Run("Error detection", func(t *testing.T) {
		err := DriftError("cuda version missing from registry").Build()

		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryDrift))
		assert.True(t, err.IsFatal())
	})

	t.Run("Wrapped in fmt.Errorf is still found", func(t *testing.T) {
		inner := ForgeError("list releases failed").Build()
		outer := fmt.Errorf("pages: %w", inner)

		assert.True(t, HasCategory(outer, CategoryForge))
		assert.Equal(t, CategoryForge, GetCategory(outer))
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("connection reset")
	err := WrapError(originalErr, CategoryNetwork, "fetch tags failed").
		Warning().
		WithContext("url", "https://hub.docker.com").
		Build()

	assert.Equal(t, SeverityWarning, err.Severity())
	assert.ErrorIs(t, err, originalErr)
	assert.Equal(t, "[network:warning] fetch tags failed: connection reset", err.Error())
}

func TestClassifiedError_WithContextCopies(t *testing.T) {
	base := RenderError("write page").WithContext("path", "a").Build()
	derived := base.WithContext("group", "cu129_torch280")

	_, ok := base.Context().Get("group")
	assert.False(t, ok, "original context must not be mutated")
	group, ok := derived.Context().GetString("group")
	require.True(t, ok)
	assert.Equal(t, "cu129_torch280", group)
	path, _ := derived.Context().GetString("path")
	assert.Equal(t, "a", path)
}

func TestGetCategory_Unclassified(t *testing.T) {
	assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	assert.Equal(t, SeverityError, GetSeverity(errors.New("plain")))
}
