package logger

import (
	"context"
	"log/slog"
)

type projectIDKey struct{}

// WithProjectID stores the project ID for the ProjectID extractor.
func WithProjectID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, projectIDKey{}, id)
}

// ProjectID adds a "project_id" attribute when the context carries one.
func ProjectID(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(projectIDKey{}).(string)
	if !ok || id == "" {
		return slog.Attr{}, false
	}
	return slog.String("project_id", id), true
}

// StringExtractor adapts a context getter to an extractor under key.
// Empty values are skipped.
func StringExtractor(key string, get func(context.Context) string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		v := get(ctx)
		if v == "" {
			return slog.Attr{}, false
		}
		return slog.String(key, v), true
	}
}

// Error is a shorthand for an "error" attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
