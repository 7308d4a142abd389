// Package errors provides the classified error type used across wheelindex.
//
// Errors carry a category (config, registry, forge, drift, render, ...), a
// severity and a small context map. The CLI adapter turns the category into
// a process exit code so the invoking CI job can tell a version drift from
// an upstream outage.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryForge, "list releases failed").
//		WithCause(httpErr).
//		WithContext("repository", "owner/repo").
//		Build()
package errors
