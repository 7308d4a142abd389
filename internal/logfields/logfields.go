package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPlatform   = "platform"
	KeyCUDA       = "cuda"
	KeyTorch      = "torch"
	KeyGroup      = "group"
	KeyOwner      = "owner"
	KeyRepo       = "repository"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Platform(p string) slog.Attr     { return slog.String(KeyPlatform, p) }
func CUDA(v string) slog.Attr         { return slog.String(KeyCUDA, v) }
func Torch(v string) slog.Attr        { return slog.String(KeyTorch, v) }
func Group(key string) slog.Attr      { return slog.String(KeyGroup, key) }
func Owner(o string) slog.Attr        { return slog.String(KeyOwner, o) }
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
