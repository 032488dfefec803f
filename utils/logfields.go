package utils

import "log/slog"

// Log field names shared by the build.
const (
	KeySource   = "source"
	KeyOutput   = "output"
	KeyPages    = "pages"
	KeyFailed   = "failed"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

func Source(path string) slog.Attr { return slog.String(KeySource, path) }
func Output(path string) slog.Attr { return slog.String(KeyOutput, path) }
func Pages(n int) slog.Attr        { return slog.Int(KeyPages, n) }
func Failed(n int) slog.Attr       { return slog.Int(KeyFailed, n) }
func DurationMS(ms int64) slog.Attr {
	return slog.Int64(KeyDuration, ms)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
